package ctx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWithValue(t *testing.T) {
	req := require.New(t)
	c := Background()
	c = WithValue(c, "requestID", "abc-123")
	req.Equal("abc-123", c.Value("requestID"))
}

func TestWithTimeout(t *testing.T) {
	req := require.New(t)
	c, cancel := WithTimeout(Background(), time.Millisecond)
	defer cancel()
	<-c.Done()
	req.Error(c.Err())
}
