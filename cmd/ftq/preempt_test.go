package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasNoPreempt(t *testing.T) {
	assertT := assert.New(t)

	assertT.False(hasNoPreempt(""))
	assertT.False(hasNoPreempt("gctrace=1"))
	assertT.False(hasNoPreempt("asyncpreemptoff=0"))
	assertT.True(hasNoPreempt("asyncpreemptoff=1"))
	assertT.True(hasNoPreempt("gctrace=1, asyncpreemptoff=1"))
	assertT.False(hasNoPreempt("asyncpreemptoff=1,asyncpreemptoff=0"))
	assertT.True(hasNoPreempt("asyncpreemptoff=0,asyncpreemptoff=1"))
}

func TestWithNoPreempt(t *testing.T) {
	tests := []struct {
		name string
		env  []string
		want []string
	}{
		{"No GODEBUG", []string{"HOME=/root"}, []string{"HOME=/root", "GODEBUG=asyncpreemptoff=1"}},
		{"Empty GODEBUG", []string{"GODEBUG=", "HOME=/root"}, []string{"GODEBUG=asyncpreemptoff=1", "HOME=/root"}},
		{"Other settings", []string{"GODEBUG=gctrace=1"}, []string{"GODEBUG=gctrace=1,asyncpreemptoff=1"}},
		{"Preemption enabled", []string{"GODEBUG=asyncpreemptoff=0"}, []string{"GODEBUG=asyncpreemptoff=0,asyncpreemptoff=1"}},
		{"Duplicate GODEBUG", []string{"GODEBUG=a=1", "GODEBUG=b=1"}, []string{"GODEBUG=a=1,asyncpreemptoff=1", "GODEBUG=b=1"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			env := withNoPreempt(test.env)
			assert.Equal(t, test.want, env)
		})
	}
}
