// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model nedir?
// Veritabanındaki bir tablonun Go karşılığıdır.
// Aynı zamanda API'den gelen/giden verilerin şeklini de belirler.
//
// `json:"name"` tag'leri struct field'larının JSON'a nasıl
// serialize/deserialize edileceğini belirler.
package models

import "time"

// Profile, bir kullanıcının uygulama içi kimliğini temsil eder.
// DB'deki "profiles" tablosunun Go karşılığıdır.
//
// UserID, dış identity provider'ın verdiği opak kullanıcı ID'sidir —
// her dış kimlik için tam olarak bir Profile satırı vardır (UNIQUE).
// Profile, kullanıcı ilk authenticated isteğini yaptığında lazy oluşturulur
// ve bu servis tarafından asla silinmez.
type Profile struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url"` // *string = nullable
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
