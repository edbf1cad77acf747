package domain

// Category описывает категорию товара.
// Набор категорий закрыт, но может расширяться через KnownCategories.
type Category string

const (
	CategoryCandles     Category = "velas"
	CategoryIncense     Category = "inciensos"
	CategoryCrystals    Category = "cristales"
	CategoryAccessories Category = "accesorios"

	// CategoryAll — значение фильтра "без ограничения по категории".
	CategoryAll Category = "all"
)

// KnownCategories — категории каталога в порядке отображения.
var KnownCategories = []Category{
	CategoryCandles,
	CategoryIncense,
	CategoryCrystals,
	CategoryAccessories,
}

// Valid сообщает, входит ли категория в перечисление.
func (c Category) Valid() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}

	return false
}

// IsAll сообщает, означает ли значение отсутствие фильтра по категории.
func (c Category) IsAll() bool {
	return c == "" || c == CategoryAll
}

func (c Category) String() string {
	return string(c)
}
