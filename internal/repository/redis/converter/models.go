package converter

// ProductRedisModel — товар в кэше. Цена хранится строкой, чтобы не терять точность.
type ProductRedisModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	Featured    bool   `json:"featured"`
}
