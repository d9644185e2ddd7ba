package server

import (
	"testing"

	"snakegame/game"
)

func TestParseInput(t *testing.T) {
	cases := []struct {
		in      InputMessage
		want    Input
		wantErr bool
	}{
		{in: InputMessage{Type: "move", Command: "up", Seq: 4}, want: Input{PlayerID: "p", Type: CmdMove, Direction: game.Up, Seq: 4}},
		{in: InputMessage{Type: "MOVE", Command: "Left"}, want: Input{PlayerID: "p", Type: CmdMove, Direction: game.Left}},
		{in: InputMessage{Type: "move", Command: "W", Seq: 5}, want: Input{PlayerID: "p", Type: CmdMove, Direction: game.Up, Seq: 5}},
		{in: InputMessage{Type: "start"}, want: Input{PlayerID: "p", Type: CmdStart}},
		{in: InputMessage{Type: " toggle "}, want: Input{PlayerID: "p", Type: CmdToggle}},
		{in: InputMessage{Type: "reset"}, want: Input{PlayerID: "p", Type: CmdReset}},
		{in: InputMessage{Type: "move", Command: "jump"}, wantErr: true},
		{in: InputMessage{Type: "fly"}, wantErr: true},
		{in: InputMessage{}, wantErr: true},
	}
	for i, c := range cases {
		got, err := ParseInput("p", c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("case %d: expected error, got %+v", i, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != c.want {
			t.Fatalf("case %d: got=%+v want=%+v", i, got, c.want)
		}
	}
}
