package api

import "github.com/iudanet/caresync/internal/crdt"

// EncryptedRevision ревизия в том виде, в котором ее хранит сервер.
// Вектор знаний передается открыто, записи зашифрованы на клиенте.
type EncryptedRevision struct {
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"` // вектор автора ревизии
	EncryptedData   string               `json:"encrypted_data"`   // base64(nonce + ciphertext + tag)
}

// PullRequest запрос ревизий, которых не знает устройство
type PullRequest struct {
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"`
}

// PullResponse ревизии, не доминируемые вектором устройства, и текущий вектор сервера
type PullResponse struct {
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"`
	Revisions       []EncryptedRevision  `json:"revisions"`
}

// PushRequest отправка локальных ревизий.
// DeviceKnowledge вектор устройства на момент вычисления ревизий.
type PushRequest struct {
	DeviceID        string               `json:"device_id"`
	DeviceKnowledge crdt.KnowledgeVector `json:"device_knowledge"`
	Revisions       []EncryptedRevision  `json:"revisions"`
}

// PushResponse вектор сервера после принятия ревизий
type PushResponse struct {
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"`
}

// NotificationRevisionsAvailable тип уведомления о новых ревизиях
const NotificationRevisionsAvailable = "revisions_available"

// Notification сообщение websocket-канала /revisions/watch
type Notification struct {
	Type            string               `json:"type"`
	KnowledgeVector crdt.KnowledgeVector `json:"knowledge_vector"`
	Origin          string               `json:"origin"` // device_id устройства, отправившего ревизии
}
