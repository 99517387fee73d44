package routes

import (
	"testing"

	"github.com/explore-flights/multimodal/common"
	"github.com/stretchr/testify/assert"
)

func TestFindConnectingRoute(t *testing.T) {
	routes := []common.RouteDescriptor{
		{Id: "1", Description: "Покровск - Якутск"},
		{Id: "2", Description: "Якутск Автовокзал — Чурапча с."},
		{Id: "3", Description: "Чурапча - Якутск Автовокзал"},
	}

	r, ok := FindConnectingRoute(routes, "Якутск Автовокзал", "Чурапча", SubstringMatcher{})
	if assert.True(t, ok) {
		assert.Equal(t, "2", r.Id)
	}

	r, ok = FindConnectingRoute(routes, "Чурапча", "Якутск Автовокзал", SubstringMatcher{})
	if assert.True(t, ok) {
		assert.Equal(t, "2", r.Id)
	}

	_, ok = FindConnectingRoute(routes, "Якутск", "Амга", SubstringMatcher{})
	assert.False(t, ok)

	_, ok = FindConnectingRoute(nil, "Якутск", "Чурапча", SubstringMatcher{})
	assert.False(t, ok)
}
