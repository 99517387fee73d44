package common

import "encoding/json"

type Set[T comparable] map[T]struct{}

func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}

	return s
}

func (s Set[T]) Add(value T) {
	s[value] = struct{}{}
}

func (s Set[T]) Contains(value T) bool {
	_, ok := s[value]
	return ok
}

func (s Set[T]) Remove(value T) bool {
	_, ok := s[value]
	delete(s, value)
	return ok
}

func (s *Set[T]) UnmarshalJSON(b []byte) error {
	var values []T
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}

	*s = NewSet(values...)
	return nil
}

func (s Set[T]) MarshalJSON() ([]byte, error) {
	values := make([]T, 0, len(s))
	for value := range s {
		values = append(values, value)
	}

	return json.Marshal(values)
}
