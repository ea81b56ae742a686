package types

import "sync"

// WatcherMap holds the websocket clients currently connected
type WatcherMap struct {
	data map[string]*Watcher
	lock *sync.RWMutex
}

func NewWatcherMap() *WatcherMap {
	return &WatcherMap{
		data: make(map[string]*Watcher),
		lock: &sync.RWMutex{},
	}
}

func (wmap *WatcherMap) Get(id string) *Watcher {
	wmap.lock.RLock()
	defer wmap.lock.RUnlock()

	return wmap.data[id]
}

func (wmap *WatcherMap) Set(watcher *Watcher) {
	wmap.lock.Lock()
	wmap.data[watcher.GetId()] = watcher
	wmap.lock.Unlock()
}

func (wmap *WatcherMap) Remove(id string) {
	wmap.lock.Lock()
	delete(wmap.data, id)
	wmap.lock.Unlock()
}

func (wmap *WatcherMap) Size() int {
	wmap.lock.RLock()
	defer wmap.lock.RUnlock()

	return len(wmap.data)
}

// Each calls fn for every watcher; fn must not modify the map
func (wmap *WatcherMap) Each(fn func(watcher *Watcher)) {
	wmap.lock.RLock()
	defer wmap.lock.RUnlock()

	for _, watcher := range wmap.data {
		fn(watcher)
	}
}
