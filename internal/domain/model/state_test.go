package model_test

import (
	"testing"

	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/stretchr/testify/suite"
)

type StateTestSuite struct {
	suite.Suite
}

func TestStateTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StateTestSuite))
}

func (s *StateTestSuite) TestParseState() {
	s.T().Parallel()

	cases := []struct {
		name     string
		input    string
		expected model.State
		wantErr  bool
	}{
		{
			name:     "available",
			input:    "available",
			expected: model.StateAvailable,
		},
		{
			name:     "in-use",
			input:    "in-use",
			expected: model.StateInUse,
		},
		{
			name:     "inactive",
			input:    "inactive",
			expected: model.StateInactive,
		},
		{
			name:     "uppercase",
			input:    "AVAILABLE",
			expected: model.StateAvailable,
		},
		{
			name:     "underscore spelling",
			input:    "IN_USE",
			expected: model.StateInUse,
		},
		{
			name:     "surrounding whitespace",
			input:    "  inactive  ",
			expected: model.StateInactive,
		},
		{
			name:    "unknown value",
			input:   "broken",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			state, err := model.ParseState(tc.input)

			if tc.wantErr {
				s.Require().ErrorIs(err, model.ErrInvalidState)

				return
			}

			s.Require().NoError(err)
			s.Require().Equal(tc.expected, state)
		})
	}
}

func (s *StateTestSuite) TestState_IsValid() {
	s.T().Parallel()

	for _, state := range model.AllStates() {
		s.Run(state.String(), func() {
			s.Require().True(state.IsValid())
		})
	}

	s.Run("unknown state", func() {
		s.Require().False(model.State("retired").IsValid())
	})
}
