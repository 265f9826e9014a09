package sigcmd

import (
	"fmt"
)

type SignalCommand struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

// Switches a lane to green for Duration seconds
type GreenCommand struct {
	Lane     int
	Duration int
}

type YellowCommand struct {
	Lane int
}

type RedCommand struct {
	Lane int
}

func (c *SignalCommand) CommandType() string {
	switch c.Value.(type) {
	case GreenCommand:
		return "GreenCommand"
	case YellowCommand:
		return "YellowCommand"
	case RedCommand:
		return "RedCommand"
	default:
		return "UnknownCommand"
	}
}

// Encode returns the newline-terminated ASCII frame the microcontroller
// understands. Lane ids are 0-based in process and 1-based on the wire.
func (c *SignalCommand) Encode() ([]byte, error) {
	switch cmd := c.Value.(type) {
	case GreenCommand:
		return []byte(fmt.Sprintf("P%dT%d\n", cmd.Lane+1, cmd.Duration)), nil
	case YellowCommand:
		return []byte(fmt.Sprintf("YELLOW%d\n", cmd.Lane+1)), nil
	case RedCommand:
		return []byte(fmt.Sprintf("RED%d\n", cmd.Lane+1)), nil
	default:
		return nil, fmt.Errorf("cannot encode command of type %T", c.Value)
	}
}

// String returns the wire frame without the trailing newline, for logging
func (c *SignalCommand) String() string {
	frame, err := c.Encode()
	if err != nil {
		return c.CommandType()
	}
	return string(frame[:len(frame)-1])
}
