package models

import (
	"io"
	"time"
)

// Advert представляет объявление продавца.
// Поле UID сериализуется как "id": внутреннее имя колонки наружу не уходит.
type Advert struct {
	UID         string    `json:"id"`       // Уникальный идентификатор объявления
	OwnerUID    string    `json:"owner_id"` // Идентификатор продавца-владельца
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	FlyerURL    string    `json:"flyer_url"` // URL картинки на медиахостинге
	CreatedAt   time.Time `json:"created_at"`
}

// DummyAdvert используется для приёма данных объявления из multipart-формы
// до их валидации и преобразования в Advert.
type DummyAdvert struct {
	Title       string  `validate:"required,min=1,max=200"`
	Description string  `validate:"max=2000"`
	Price       float64 `validate:"gte=0"`
	Category    string  `validate:"required,max=100"`
}

// AdvertPatch описывает частичное обновление объявления.
// nil означает "поле не менять".
type AdvertPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	FlyerURL    *string
}

// AdvertFilter задаёт параметры поиска объявлений.
// Текстовые поля применяются только если непустые, каждое — как
// регистронезависимое вхождение подстроки. Диапазон цен включительный.
type AdvertFilter struct {
	Title       string
	Description string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	Limit       int
	Skip        int
}

// FlyerUpload — содержимое файла-флаера, принятого из формы.
type FlyerUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
}
