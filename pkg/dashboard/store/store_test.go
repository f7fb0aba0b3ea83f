package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/octodash/octodash/pkg/dashboard/model"
)

func Test_CreateThenGet(t *testing.T) {
	s := New(24 * time.Hour)

	session := s.Create(&model.User{Login: "laszlo", AccessToken: "token"})
	assert.NotEmpty(t, session.ID)

	got := s.Get(session.ID)
	assert.NotNil(t, got)
	assert.Equal(t, "laszlo", got.User.Login)
	assert.Equal(t, "token", got.User.AccessToken)
}

func Test_SessionIDsAreUnique(t *testing.T) {
	s := New(24 * time.Hour)

	first := s.Create(&model.User{Login: "first"})
	second := s.Create(&model.User{Login: "second"})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "first", s.Get(first.ID).User.Login)
	assert.Equal(t, "second", s.Get(second.ID).User.Login)
}

func Test_DestroyIsIdempotent(t *testing.T) {
	s := New(24 * time.Hour)

	session := s.Create(&model.User{Login: "laszlo"})

	assert.True(t, s.Destroy(session.ID))
	assert.False(t, s.Destroy(session.ID))
	assert.Nil(t, s.Get(session.ID))
}

func Test_ExpiredSessionBehavesLikeUnknown(t *testing.T) {
	now := time.Now()
	s := NewWithClock(time.Hour, func() time.Time { return now })

	session := s.Create(&model.User{Login: "laszlo"})
	assert.NotNil(t, s.Get(session.ID))

	now = now.Add(2 * time.Hour)
	assert.Nil(t, s.Get(session.ID))
}

func Test_ConcurrentAccess(t *testing.T) {
	s := New(24 * time.Hour)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			session := s.Create(&model.User{Login: "laszlo"})
			s.Get(session.ID)
			s.Destroy(session.ID)
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
