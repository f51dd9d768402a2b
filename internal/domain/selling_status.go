package domain

import "github.com/DRSN-tech/cafe-backend/pkg/e"

// SellingStatus описывает статус продажи товара
type SellingStatus string

const (
	SellingStatusSelling     SellingStatus = "SELLING"
	SellingStatusHold        SellingStatus = "HOLD"
	SellingStatusStopSelling SellingStatus = "STOP_SELLING"
)

var sellingStatusTexts = map[SellingStatus]string{
	SellingStatusSelling:     "Selling",
	SellingStatusHold:        "Hold",
	SellingStatusStopSelling: "Stop selling",
}

func (s SellingStatus) Text() string {
	return sellingStatusTexts[s]
}

// ForDisplay возвращает статусы товаров, которые показываются на витрине.
func ForDisplay() []SellingStatus {
	return []SellingStatus{SellingStatusSelling, SellingStatusHold}
}

func ParseSellingStatus(s string) (SellingStatus, error) {
	if s == "" {
		return "", e.ErrSellingStatusRequired
	}

	status := SellingStatus(s)
	if _, ok := sellingStatusTexts[status]; !ok {
		return "", e.ErrInvalidSellingStatus
	}

	return status, nil
}
