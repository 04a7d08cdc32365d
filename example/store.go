package main

import (
	"sort"
	"sync"
)

// Task is a todo item.
type Task struct {
	ID    string
	Title string
	Done  bool
}

// Store is an in-memory task store.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

func NewStore() *Store {
	return &Store{tasks: map[string]Task{
		"1": {ID: "1", Title: "Write the layout file"},
		"2": {ID: "2", Title: "Wire the sidebar region"},
		"3": {ID: "3", Title: "Ship it", Done: true},
	}}
}

func (s *Store) Get(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	return t, ok
}

func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
