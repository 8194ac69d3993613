package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveWorkers(t *testing.T) {
	assert.Equal(t, 3, ResolveWorkers(3))
	assert.Greater(t, ResolveWorkers(0), 0)
	assert.Greater(t, DefaultWorkers(), 0)
}

func TestMaskPoolClearsReusedMasks(t *testing.T) {
	m := GetMask(16)
	assert.Len(t, m, 16)
	for i := range m {
		m[i] = true
	}
	PutMask(m)

	again := GetMask(16)
	assert.Len(t, again, 16)
	for _, v := range again {
		assert.False(t, v)
	}

	assert.Len(t, GetMask(5), 5)
	PutMask(nil)
}
