package audio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTakeStopsAtDuration(t *testing.T) {
	tk := newTake(100 * time.Millisecond)
	assert.Equal(t, 4800, tk.limit, "0.1s of 24kHz mono s16")

	tk.write(make([]byte, 3000))
	select {
	case <-tk.full:
		t.Fatal("full too early")
	default:
	}

	tk.write(make([]byte, 3000))
	tk.write(make([]byte, 10))
	<-tk.full
	assert.Len(t, tk.bytes(), 4800)
}
