package leds

import (
	"errors"
	"strings"
	"testing"

	"github.com/BitPonyLLC/ledseq/pkg/gpio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type write struct {
	pin   int
	level gpio.Level
}

type recordingDriver struct {
	configured []int
	writes     []write
	failPin    int
}

func (d *recordingDriver) Configure(pin int) error {
	d.configured = append(d.configured, pin)
	return nil
}

func (d *recordingDriver) Write(pin int, level gpio.Level) error {
	if pin == d.failPin {
		return errors.New("stuck")
	}
	d.writes = append(d.writes, write{pin, level})
	return nil
}

func (d *recordingDriver) Close() error { return nil }

func TestVisualizeEveryPattern(t *testing.T) {
	for v := 0; v < 256; v++ {
		p := Pattern(v)
		text := Visualize(p)

		require.Len(t, text, Count+1)
		require.True(t, strings.HasSuffix(text, "\n"))
		for i := 0; i < Count; i++ {
			lit := p&(1<<(7-i)) != 0
			if lit {
				assert.Equal(t, byte('*'), text[i], "pattern %#02x char %d", v, i)
			} else {
				assert.Equal(t, byte('-'), text[i], "pattern %#02x char %d", v, i)
			}
		}
	}
}

func TestPatternString(t *testing.T) {
	assert.Equal(t, "*------*", Pattern(0x81).String())
	assert.Equal(t, "---**---", Pattern(0x18).String())
	assert.Equal(t, "--------", AllOff.String())
	assert.Equal(t, "********", AllOn.String())
}

func TestRenderBitOrder(t *testing.T) {
	d := &recordingDriver{failPin: -1}
	r := NewRenderer(d)

	require.NoError(t, r.Configure())
	assert.Equal(t, DefaultPins[:], d.configured)

	require.NoError(t, r.Render(0x81))
	require.Len(t, d.writes, Count)
	for j, w := range d.writes {
		assert.Equal(t, DefaultPins[j], w.pin)
		assert.Equal(t, gpio.Level(j == 0 || j == 7), w.level, "LED %d", j)
	}
}

func TestOff(t *testing.T) {
	d := &recordingDriver{failPin: -1}
	r := NewRenderer(d)

	require.NoError(t, r.Off())
	for _, w := range d.writes {
		assert.Equal(t, gpio.Low, w.level)
	}
}

func TestRenderError(t *testing.T) {
	d := &recordingDriver{failPin: 18}
	r := NewRenderer(d)

	err := r.Render(AllOn)
	assert.ErrorContains(t, err, "pin 18")
	assert.Len(t, d.writes, 2)
}

func TestRenderWithConsoleDriver(t *testing.T) {
	d := gpio.NewConsole(nil)
	r := NewRenderer(d)
	require.NoError(t, r.Configure())
	require.NoError(t, r.Render(0x02))
	require.NoError(t, r.Off())
	require.NoError(t, d.Close())
	assert.Error(t, r.Render(0x02), "lines released")
}
