package domain

// Object описывает файл, который хранится в S3
type Object struct {
	Bucket      string
	ObjectKey   string
	Bytes       []byte
	ContentType string // Example: "text/plain"
}

func NewObject(bucket, objectKey string, data []byte, contentType string) *Object {
	return &Object{
		Bucket:      bucket,
		ObjectKey:   objectKey,
		Bytes:       data,
		ContentType: contentType,
	}
}
