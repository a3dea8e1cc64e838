package notify

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestBufferDrain(t *testing.T) {
	b := NewBuffer()
	assert.Empty(t, b.Drain())

	b.Show("first")
	b.Show("second")
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"first", "second"}, b.Drain())
	assert.Equal(t, 0, b.Len())
	assert.Empty(t, b.Drain())
}

func TestMultiForwardsToEverySink(t *testing.T) {
	a, b := NewBuffer(), NewBuffer()
	Multi{a, nil, b, Discard}.Show("hello")

	assert.Equal(t, []string{"hello"}, a.Drain())
	assert.Equal(t, []string{"hello"}, b.Drain())
}

func TestLogSink(t *testing.T) {
	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	NewLogSink(logger).Show("x is not a valid mail address")

	assert.Contains(t, out.String(), `"notification":"x is not a valid mail address"`)
	assert.Contains(t, out.String(), `"level":"warning"`)
}
