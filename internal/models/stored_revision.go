package models

import (
	"time"

	"github.com/iudanet/caresync/internal/crdt"
)

// StoredRevision зашифрованная ревизия в журнале учетной записи на сервере.
// Сервер видит только вектор знаний, содержимое доступно лишь устройствам пользователя.
type StoredRevision struct {
	CreatedAt       time.Time            `json:"created_at"`       // время приема сервером
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"` // вектор автора, передается открыто
	UserID          string               `json:"user_id"`          // владелец журнала
	DeviceID        string               `json:"device_id"`        // устройство, отправившее ревизию
	EncryptedData   string               `json:"encrypted_data"`   // base64(nonce||ciphertext||tag)
	Seq             int64                `json:"seq"`              // порядковый номер в журнале
}
