// Package botstate хранит память диалогов бота: в каком шаге анкеты находится
// чат и что он уже ввел. Аналог FSM-хранилища, состояние живет до
// завершения или отмены сценария.
package botstate

import "sync"

type State struct {
	Name string
	Data map[string]string
}

type Store struct {
	mu     sync.Mutex
	states map[int64]*State
}

func NewStore() *Store {
	return &Store{states: make(map[int64]*State)}
}

// Get возвращает имя текущего состояния чата, пустая строка значит, что
// сценарий не запущен.
func (s *Store) Get(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[chatID]; ok {
		return state.Name
	}
	return ""
}

// Set переводит чат в новое состояние, накопленные данные сохраняются.
func (s *Store) Set(chatID int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[chatID]; ok {
		state.Name = name
		return
	}
	s.states[chatID] = &State{Name: name, Data: make(map[string]string)}
}

func (s *Store) SetData(chatID int64, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[chatID]
	if !ok {
		state = &State{Data: make(map[string]string)}
		s.states[chatID] = state
	}
	state.Data[key] = value
}

func (s *Store) GetData(chatID int64, key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.states[chatID]; ok {
		return state.Data[key]
	}
	return ""
}

// Clear завершает сценарий и выбрасывает накопленное.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}
