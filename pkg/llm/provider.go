// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider - контракт для любого AI-сервиса.
type Provider interface {
	// Generate отправляет сообщения и возвращает ответ модели.
	// Опции переопределяют значения из определения модели.
	Generate(ctx context.Context, messages []Message, opts ...GenerateOption) (Message, error)
}
