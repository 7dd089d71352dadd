// Базовые типы - определяем универсальный язык общения с моделями
package llm

// Role - роль автора сообщения.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message - одно сообщение диалога.
type Message struct {
	Role    Role
	Content string
	// Images - data-uri или http ссылки. Непустой список делает запрос vision-запросом.
	Images []string
}

// FormatJSON - значение Format для структурированного ответа.
const FormatJSON = "json_object"
