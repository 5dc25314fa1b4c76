package cli

import (
	"sync"
	"time"
)

// notice is the last error message shown in the prompt. It expires ttl
// after it was set; a zero ttl never shows anything.
type notice struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	text    string
	expires time.Time
}

func newNotice(ttl time.Duration) *notice {
	return &notice{ttl: ttl, now: time.Now}
}

func (n *notice) Set(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = text
	n.expires = n.now().Add(n.ttl)
}

// Current returns the live notice text, or "" once it has expired.
func (n *notice) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.text == "" {
		return ""
	}
	if !n.now().Before(n.expires) {
		n.text = ""
		return ""
	}
	return n.text
}

func (n *notice) Clear() {
	n.mu.Lock()
	n.text = ""
	n.mu.Unlock()
}
