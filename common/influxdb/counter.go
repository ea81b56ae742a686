package influxdb

import (
	"sync/atomic"
)

type Counter struct {
	count int64
}

func NewCounter() *Counter {
	return &Counter{0}
}

func (counter *Counter) Add(nbr int) {
	atomic.AddInt64(&counter.count, int64(nbr))
}

func (counter *Counter) Get() int {
	return int(atomic.LoadInt64(&counter.count))
}

// GetAndReset returns the count accumulated since the previous call
func (counter *Counter) GetAndReset() int {
	return int(atomic.SwapInt64(&counter.count, 0))
}
