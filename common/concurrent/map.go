package concurrent

import "sync"

// Map is a mutex guarded map safe for concurrent use. The zero value is not usable.
type Map[K comparable, V any] struct {
	m   map[K]V
	mtx *sync.RWMutex
}

func NewMap[K comparable, V any]() Map[K, V] {
	return Map[K, V]{
		m:   make(map[K]V),
		mtx: new(sync.RWMutex),
	}
}

func (cm Map[K, V]) Load(k K) (V, bool) {
	cm.mtx.RLock()
	defer cm.mtx.RUnlock()

	v, ok := cm.m[k]
	return v, ok
}

func (cm Map[K, V]) Store(k K, v V) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()
	cm.m[k] = v
}

func (cm Map[K, V]) LoadOrStore(k K, v V) (V, bool) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()

	if existing, ok := cm.m[k]; ok {
		return existing, true
	}

	cm.m[k] = v
	return v, false
}

func (cm Map[K, V]) LoadAndDelete(k K) (V, bool) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()

	v, ok := cm.m[k]
	delete(cm.m, k)

	return v, ok
}

func (cm Map[K, V]) Delete(k K) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()
	delete(cm.m, k)
}

func (cm Map[K, V]) Len() int {
	cm.mtx.RLock()
	defer cm.mtx.RUnlock()
	return len(cm.m)
}

// Values returns a snapshot of the current values.
func (cm Map[K, V]) Values() []V {
	cm.mtx.RLock()
	defer cm.mtx.RUnlock()

	values := make([]V, 0, len(cm.m))
	for _, v := range cm.m {
		values = append(values, v)
	}

	return values
}
