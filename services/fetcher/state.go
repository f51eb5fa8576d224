package fetcher

import (
	"encoding/json"
	"os"
	"sync"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusCompleted   Status = "completed"
	StatusFailedFetch Status = "failed_exception"
	StatusFailedSmall Status = "failed_small_file"
)

// StateManager tracks per-url fetch status in a json file so an
// interrupted run can resume without refetching completed pages.
type StateManager struct {
	path  string
	mu    sync.Mutex
	state map[string]Status
}

func NewStateManager(path string) (*StateManager, error) {
	s := &StateManager{
		path:  path,
		state: map[string]Status{},
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}
	err = json.Unmarshal(data, &s.state)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize registers urls not yet tracked as pending. Urls already
// present keep their recorded status.
func (s *StateManager) Initialize(urls []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := false
	for _, u := range urls {
		if _, ok := s.state[u]; !ok {
			s.state[u] = StatusPending
			updated = true
		}
	}
	if !updated {
		return nil
	}
	return s.save()
}

func (s *StateManager) SetStatus(url string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state[url] = status
	return s.save()
}

// Pending returns every url whose status is not completed, including
// previously failed ones so they are retried on the next run.
func (s *StateManager) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	for u, status := range s.state {
		if status != StatusCompleted {
			out = append(out, u)
		}
	}
	return out
}

func (s *StateManager) Counts() map[Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[Status]int{}
	for _, status := range s.state {
		out[status]++
	}
	return out
}

// save must be called with the mutex held.
func (s *StateManager) save() error {
	data, err := json.MarshalIndent(s.state, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
