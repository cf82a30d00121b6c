package models

import "time"

// User представляет учетную запись на сервере синхронизации.
// Все устройства одной учетной записи синхронизируются через общий журнал ревизий.
type User struct {
	CreatedAt   time.Time  `json:"created_at"`           // время создания
	LastLogin   *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID          string     `json:"id"`                   // UUID пользователя
	Username    string     `json:"username"`             // уникальный username
	AuthKeyHash string     `json:"auth_key_hash"`        // SHA256 хеш auth_key
	PublicSalt  string     `json:"public_salt"`          // base64 encoded salt (32 bytes)
}
