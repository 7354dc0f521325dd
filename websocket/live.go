package websocket

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"zenzone/audio"
	"zenzone/services"
	"zenzone/stress"
	"zenzone/utils"
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  1 << 16,
	WriteBufferSize: 1 << 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveMessage carries control messages and scoring updates on the live
// analysis socket. Audio itself travels as binary PCM16LE mono frames.
type LiveMessage struct {
	Type          string              `json:"type"`
	StressScore   float64             `json:"stress_score,omitempty"`
	AudioFeatures *stress.Descriptors `json:"audio_features,omitempty"`
	Result        interface{}         `json:"result,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// LiveAnalysisHandler streams interim acoustic stress snapshots while the
// client records, then runs the full pipeline when the client finalizes.
func LiveAnalysisHandler(c *gin.Context) {
	conn, err := liveUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade live analysis connection: %v", err)
		return
	}
	defer conn.Close()

	svc := services.GetAnalysisService()
	sampleRate := svc.SampleRate()
	userID := c.GetHeader("X-User-Id")

	var pcm []int16
	lastScored := 0

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Live analysis connection error: %v", err)
			}
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			pcm = append(pcm, decodePCM16(data)...)
			// Interim update roughly once per second of received audio.
			if len(pcm)-lastScored >= sampleRate {
				lastScored = len(pcm)
				score, descriptors := svc.ScoreSamples(audio.PCM16ToFloat(pcm))
				send(conn, LiveMessage{
					Type:          "interim",
					StressScore:   score,
					AudioFeatures: &descriptors,
				})
			}

		case websocket.TextMessage:
			var msg LiveMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				send(conn, LiveMessage{Type: "error", Error: "invalid message"})
				continue
			}
			switch msg.Type {
			case "finalize":
				finalize(conn, svc, pcm, sampleRate, userID)
				return
			case "reset":
				pcm = pcm[:0]
				lastScored = 0
			default:
				send(conn, LiveMessage{Type: "error", Error: "unknown message type: " + msg.Type})
			}
		}
	}
}

func finalize(conn *websocket.Conn, svc *services.AnalysisService, pcm []int16, sampleRate int, userID string) {
	if len(pcm) == 0 {
		send(conn, LiveMessage{Type: "error", Error: "no audio received"})
		return
	}

	path := utils.TempAudioPath(svc.UploadDir(), "live.wav")
	if err := audio.WriteWAV(path, pcm, sampleRate); err != nil {
		log.Printf("Failed to persist streamed audio: %v", err)
		send(conn, LiveMessage{Type: "error", Error: "failed to save audio"})
		return
	}
	defer utils.RemoveQuietly(path)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result := svc.AnalyzeRecording(ctx, path, userID)
	send(conn, LiveMessage{Type: "final", Result: result})
}

func send(conn *websocket.Conn, msg LiveMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Failed to write live analysis message: %v", err)
	}
}

func decodePCM16(data []byte) []int16 {
	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i:]))
	}
	return samples
}
