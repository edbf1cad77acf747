package catalogsource

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func sample(id, name, price, image, description string, category domain.Category, inStock, featured bool) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		Image:       image,
		Category:    category,
		Stock:       domain.StockFromAvailability(inStock),
		Featured:    featured,
	}
}

const (
	imgCandles     = "https://images.unsplash.com/photo-1625055887171-4a3186a42b39?w=300&h=300&fit=crop&crop=center"
	imgCandlesAlt  = "https://images.unsplash.com/photo-1618160702438-9b02ab6515c9?w=300&h=300&fit=crop&crop=center"
	imgIncense     = "https://images.unsplash.com/photo-1500673922987-e212871fec22?w=300&h=300&fit=crop&crop=center"
	imgCrystals    = "https://images.unsplash.com/photo-1470813740244-df37b8c1edcb?w=300&h=300&fit=crop&crop=center"
	imgAccessories = "https://images.unsplash.com/photo-1523712999610-f77fbcfc3843?w=300&h=300&fit=crop&crop=center"
)

// SampleProducts возвращает демонстрационный каталог.
func SampleProducts() []domain.Product {
	return []domain.Product{
		sample("1", "Vela Aromática de Lavanda", "25.99", imgCandles,
			"Vela artesanal de cera de soja con aceites esenciales de lavanda. Perfecta para rituales de meditación y transmutación.",
			domain.CategoryCandles, true, true),
		sample("2", "Vela Protección", "22.50", imgCandlesAlt,
			"Vela negra con romero y ruda para protección energética. Duración aproximada de 8 horas.",
			domain.CategoryCandles, true, false),
		sample("3", "Vela Amor & Armonía", "28.00", imgCandlesAlt,
			"Vela rosa con aceite de rosa damascena y cuarzo rosa. Ideal para atraer el amor y la armonía.",
			domain.CategoryCandles, false, false),
		sample("4", "Incienso Palo Santo", "15.99", imgIncense,
			"Palo santo auténtico del Perú. Limpia espacios y eleva la vibración energética. Pack de 6 palos.",
			domain.CategoryIncense, true, false),
		sample("5", "Incienso Salvia Blanca", "18.50", imgIncense,
			"Salvia blanca californiana para purificación y limpieza energética profunda. Manojo de 15cm.",
			domain.CategoryIncense, true, false),
		sample("6", "Incienso Copal", "12.75", imgIncense,
			"Resina de copal mexicano para ceremonias y meditación. Aroma dulce y purificador.",
			domain.CategoryIncense, true, false),
		sample("7", "Cuarzo Rosa", "35.00", imgCrystals,
			"Cuarzo rosa natural de Brasil. Piedra del amor incondicional y la sanación emocional. Tamaño mediano.",
			domain.CategoryCrystals, true, true),
		sample("8", "Amatista Cluster", "42.99", imgCrystals,
			"Cluster de amatista uruguaya. Excelente para meditación y protección espiritual. Pieza única.",
			domain.CategoryCrystals, true, false),
		sample("9", "Selenita Torre", "29.99", imgCrystals,
			"Torre de selenita marroquí. Purifica y carga otros cristales. Altura de 15cm.",
			domain.CategoryCrystals, false, false),
		sample("10", "Portavelas Luna", "19.99", imgAccessories,
			"Portavelas de cerámica artesanal con diseño de luna creciente. Perfecto para velas pequeñas.",
			domain.CategoryAccessories, true, false),
		sample("11", "Quemador de Incienso", "24.50", imgAccessories,
			"Quemador de incienso de madera tallada a mano con símbolos místicos. Incluye bandeja recolectora.",
			domain.CategoryAccessories, true, false),
		sample("12", "Set Ritual Completo", "89.99", imgAccessories,
			"Set completo para rituales: vela, incienso, cristal, sal marina y guía de rituales. Todo lo necesario para comenzar.",
			domain.CategoryAccessories, true, true),
	}
}
