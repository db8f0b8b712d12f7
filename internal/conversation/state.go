// Package conversation хранит историю одного диалога в памяти процесса.
package conversation

import "LLMClients/internal/llm"

// State упорядоченная история сообщений одной сессии.
// Системное сообщение хранится отдельно как «затравка» и всегда идёт первым в Snapshot.
// Доступ только из одного цикла, блокировки не нужны.
type State struct {
	system   string
	messages []llm.Message
}

// New создаёт пустой диалог. Непустой system становится затравкой.
func New(system string) *State {
	return &State{system: system, messages: make([]llm.Message, 0)}
}

// Append добавляет сообщение в конец истории.
func (s *State) Append(role llm.Role, parts ...llm.Part) {
	s.AppendMessage(llm.Message{Role: role, Parts: parts})
}

// AppendText добавляет текстовое сообщение.
func (s *State) AppendText(role llm.Role, text string) {
	s.AppendMessage(llm.NewTextMessage(role, text))
}

// AppendMessage добавляет копию сообщения; дальнейшие изменения аргумента историю не затрагивают.
func (s *State) AppendMessage(m llm.Message) {
	s.messages = append(s.messages, m.Clone())
}

// Clear сбрасывает историю. Затравка (если есть) сохраняется.
func (s *State) Clear() {
	s.messages = make([]llm.Message, 0)
}

// SetSystem заменяет затравку для следующих запросов. Пустая строка её убирает.
func (s *State) SetSystem(system string) {
	s.system = system
}

// System возвращает текущую затравку.
func (s *State) System() string {
	return s.system
}

// Len количество сообщений истории без затравки.
func (s *State) Len() int {
	return len(s.messages)
}

// Snapshot возвращает копию последовательности: затравка, затем история в порядке добавления.
func (s *State) Snapshot() []llm.Message {
	out := make([]llm.Message, 0, len(s.messages)+1)
	if s.system != "" {
		out = append(out, llm.NewTextMessage(llm.RoleSystem, s.system))
	}
	for _, m := range s.messages {
		out = append(out, m.Clone())
	}
	return out
}
