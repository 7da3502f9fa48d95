package services

// Broadcaster - relay уведомлений о мутациях. Рассылка best-effort,
// ошибок не возвращает и не должна влиять на результат операции.
// Продакшен-реализация - realtime.Hub; в тестах используется no-op.
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// NoopBroadcaster удобен для тестов и фоновых утилит.
type NoopBroadcaster struct{}

func (NoopBroadcaster) Broadcast(string, interface{}) {}
