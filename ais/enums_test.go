package ais

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationStatusValid(t *testing.T) {
	for _, status := range []NavigationStatus{0, 1, 2, 3, 4, 5, 6, 7, 8, 14, 15} {
		assert.True(t, status.Valid(), "status %d", status)
	}
	for _, status := range []NavigationStatus{-1, 9, 10, 11, 12, 13, 16} {
		assert.False(t, status.Valid(), "status %d", status)
	}
}

func TestShipTypeValid(t *testing.T) {
	for _, shipType := range []ShipType{0, 20, 30, 37, 40, 50, 58, 60, 70, 80, 90} {
		assert.True(t, shipType.Valid(), "ship type %d", shipType)
	}
	for _, shipType := range []ShipType{-1, 1, 19, 38, 91, 100} {
		assert.False(t, shipType.Valid(), "ship type %d", shipType)
	}
}

func TestValidMID(t *testing.T) {
	// multi-code countries are flattened into the lookup table
	for _, code := range []int{338, 366, 367, 368, 369} {
		assert.True(t, ValidMID(code), "code %d", code)
	}
	assert.True(t, ValidMID(205))
	assert.False(t, ValidMID(123))
	assert.False(t, ValidMID(339))
}
