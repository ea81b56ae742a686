package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var (
	debugOutput io.Writer = os.Stdout
	debugLock             = &sync.Mutex{}

	hostname     string
	hostnameOnce sync.Once
)

// SetDebugOutput redirects the debug lines, stdout by default
func SetDebugOutput(w io.Writer) {
	debugLock.Lock()
	debugOutput = w
	debugLock.Unlock()
}

func Debug(service string, message string) {
	DebugWithContext(service, message, nil)
}

// DebugWithContext writes one JSON line; the hostname is added to context
func DebugWithContext(service string, message string, context Context) {
	hostnameOnce.Do(func() {
		hostname, _ = os.Hostname()
	})

	full := make(Context, len(context)+1)
	for k, v := range context {
		full[k] = v
	}

	if hostname != "" {
		full["hostname"] = hostname
	}

	data, _ := json.Marshal(Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: full,
	})

	debugLock.Lock()
	fmt.Fprintln(debugOutput, string(data))
	debugLock.Unlock()
}
