package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/doodle-lobby/internal/proto"
)

type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
	Code  string `json:"code,omitempty"`
}

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:3000/ws", "WebSocket address")
	room := flag.String("room", "", "room to join; a new room is created when empty")
	name := flag.String("name", "", "name to switch to after joining")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(event string, data any) error {
		if err := wsjson.Write(ctx, conn, frame{Event: event, Data: data}); err != nil {
			return fmt.Errorf("send %s: %w", event, err)
		}
		return nil
	}

	if *room == "" {
		err = send(proto.InboundCreateRoom, nil)
	} else {
		err = send(proto.InboundJoinRoom, *room)
	}
	if err != nil {
		return err
	}

	renamed := *name == ""
	for {
		var f frame
		if err := wsjson.Read(ctx, conn, &f); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("<- %s %v %s\n", f.Event, f.Data, f.Code)

		switch f.Event {
		case proto.OutboundError:
			return fmt.Errorf("server error %s: %v", f.Code, f.Data)
		case proto.OutboundRoomJoined:
			if !renamed {
				renamed = true
				if err := send(proto.InboundChangeName, *name); err != nil {
					return err
				}
			}
		}
	}
}
