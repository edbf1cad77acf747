package cart

import (
	"encoding/json"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// lineRecord — формат позиции корзины в хранилище (JSON-массив позиций).
type lineRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured"`
	Quantity    int             `json:"quantity"`
}

// Marshal сериализует позиции; пустая корзина даёт "[]", а не "null".
func Marshal(lines []domain.CartLine) ([]byte, error) {
	records := make([]lineRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, lineRecord{
			ID:          line.ProductID,
			Name:        line.Name,
			Description: line.Description,
			Price:       line.Price,
			Image:       line.Image,
			Category:    string(line.Category),
			Stock:       line.Stock,
			InStock:     line.Stock > 0,
			Featured:    line.Featured,
			Quantity:    line.Quantity,
		})
	}

	return json.Marshal(records)
}

// Unmarshal разбирает сохранённые позиции.
func Unmarshal(data []byte) ([]domain.CartLine, error) {
	var records []lineRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(records))
	for _, r := range records {
		stock := r.Stock
		if stock == 0 && r.InStock {
			stock = domain.StockFromAvailability(true)
		}
		lines = append(lines, domain.CartLine{
			ProductID:   r.ID,
			Name:        r.Name,
			Description: r.Description,
			Price:       r.Price,
			Image:       r.Image,
			Category:    domain.Category(r.Category),
			Stock:       stock,
			Featured:    r.Featured,
			Quantity:    r.Quantity,
		})
	}

	return lines, nil
}
