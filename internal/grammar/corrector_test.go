package grammar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeProvider struct {
	out   string
	err   error
	calls int
}

func (f *fakeProvider) Correct(ctx context.Context, text string) (string, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("missing deadline")
	}
	return f.out, f.err
}

func TestCorrector_Correct(t *testing.T) {
	p := &fakeProvider{out: "I am happy."}
	c := NewCorrector("fake", p)

	assert.Equal(t, "I am happy.", c.Correct(context.Background(), "i am happy."))
	assert.Equal(t, 1, p.calls)
}

func TestCorrector_FailureKeepsInput(t *testing.T) {
	p := &fakeProvider{err: errors.New("503")}
	c := NewCorrector("fake", p).WithTimeout(time.Second)

	assert.Equal(t, "i am happy.", c.Correct(context.Background(), "i am happy."))
}

func TestCorrector_EmptyResultKeepsInput(t *testing.T) {
	c := NewCorrector("fake", &fakeProvider{out: "  "})
	assert.Equal(t, "keep me", c.Correct(context.Background(), "keep me"))
}

func TestCorrector_SkipsWhenUnhealthy(t *testing.T) {
	p := &fakeProvider{out: "changed"}
	c := NewCorrector("fake", p)
	c.Health().Store(false)

	assert.Equal(t, "original", c.Correct(context.Background(), "original"))
	assert.Zero(t, p.calls)
}

func TestCorrector_NilProvider(t *testing.T) {
	c := NewCorrector("none", nil)
	assert.Equal(t, "as is", c.Correct(context.Background(), "as is"))
}
