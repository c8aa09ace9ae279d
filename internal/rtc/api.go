package rtc

import (
	"fmt"

	"github.com/pion/interceptor"
	"github.com/pion/webrtc/v3"
)

// GestureLabel is the data channel label the client opens for gestures.
const GestureLabel = "gestures"

// Handler consumes one data channel message and returns the reply, if any.
type Handler func(data []byte) []byte

// API builds peer connections with default codecs and interceptors.
type API struct {
	api *webrtc.API
}

// NewAPI initializes the WebRTC API with default codecs/interceptors.
func NewAPI() (*API, error) {
	media := &webrtc.MediaEngine{}
	if err := media.RegisterDefaultCodecs(); err != nil {
		return nil, fmt.Errorf("register codecs: %w", err)
	}

	interceptors := &interceptor.Registry{}
	if err := webrtc.RegisterDefaultInterceptors(media, interceptors); err != nil {
		return nil, fmt.Errorf("register interceptors: %w", err)
	}

	api := webrtc.NewAPI(
		webrtc.WithMediaEngine(media),
		webrtc.WithInterceptorRegistry(interceptors),
	)
	return &API{api: api}, nil
}

// NewPeer creates a peer connection that routes gesture channel messages to h.
func (a *API) NewPeer(h Handler) (*webrtc.PeerConnection, error) {
	peer, err := a.api.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, err
	}
	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != GestureLabel {
			return
		}
		dc.OnMessage(func(m webrtc.DataChannelMessage) {
			reply := h(m.Data)
			if reply == nil {
				return
			}
			if m.IsString {
				_ = dc.SendText(string(reply))
				return
			}
			_ = dc.Send(reply)
		})
	})
	return peer, nil
}
