// Package models — identity token claim'leri.
//
// huddle kimlik doğrulamayı kendisi YAPMAZ: kullanıcılar dış identity
// provider'da oturum açar, provider HS256 ile imzalı bir token verir.
// Bu dosya o token'ın payload'ını tanımlar — auth middleware doğrular,
// ProfileService claim'lerden lazy profil oluşturur.
package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims, dış identity provider'ın imzaladığı token'ın claim'leri.
//
// Subject (RegisteredClaims içinde) dış kullanıcı ID'sidir —
// profiles.user_id bu değere bağlanır. Name/AvatarURL/Email display
// bilgileridir ve yalnızca profil İLK oluşturulurken kullanılır.
type IdentityClaims struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
