package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThrottle_PerUser(t *testing.T) {
	th := NewThrottle(ThrottleConfig{Rate: 0.001, Burst: 2})

	assert.True(t, th.Allow("a"))
	assert.True(t, th.Allow("a"))
	assert.False(t, th.Allow("a"))

	// другой пользователь со своим лимитом
	assert.True(t, th.Allow("b"))
	assert.Equal(t, 2, th.tracked())
}

func TestThrottle_Disabled(t *testing.T) {
	th := NewThrottle(ThrottleConfig{})
	for i := 0; i < 100; i++ {
		assert.True(t, th.Allow("a"))
	}
	assert.Zero(t, th.tracked())

	var nilThrottle *Throttle
	assert.True(t, nilThrottle.Allow("a"))
}
