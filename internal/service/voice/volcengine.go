package voice

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

const defaultVolcengineURL = "wss://openspeech.bytedance.com/api/v3/tts/unidirectional/stream"

// VolcengineConfig 火山引擎 TTS 配置
type VolcengineConfig struct {
	AppID       string
	AccessToken string
	URL         string
	Speaker     string
	Timeout     time.Duration
}

// VolcengineTTS 火山引擎单向流式 TTS WebSocket 客户端
type VolcengineTTS struct {
	cfg    VolcengineConfig
	dialer *websocket.Dialer
}

// volcengineSpeakers 按语言与性别选择默认发音人，缺失时使用英文。
var volcengineSpeakers = map[language.Language]map[persona.Gender]string{
	language.English: {
		persona.Female:        "en_female_amy_jupiter_bigtts",
		persona.Male:          "en_male_glen_emo_v2_mars_bigtts",
		persona.GenderGeneral: "en_female_amy_jupiter_bigtts",
	},
	language.Chinese: {
		persona.Female:        "zh_female_vv_uranus_bigtts",
		persona.Male:          "zh_male_M392_conversation_wvae_bigtts",
		persona.GenderGeneral: "zh_female_vv_uranus_bigtts",
	},
}

type volcengineRequest struct {
	User struct {
		UID string `json:"uid"`
	} `json:"user"`
	ReqParams struct {
		Speaker     string                `json:"speaker"`
		Text        string                `json:"text"`
		AudioParams volcengineAudioParams `json:"audio_params"`
		Additions   string                `json:"additions,omitempty"`
		Language    string                `json:"language,omitempty"`
	} `json:"req_params"`
}

type volcengineAudioParams struct {
	Format      string  `json:"format"`
	SampleRate  int     `json:"sample_rate"`
	SpeedRatio  float64 `json:"speed_ratio,omitempty"`
	VolumeRatio float64 `json:"volume_ratio,omitempty"`
}

type volcengineServerMessage struct {
	ReqID    string `json:"reqid"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Sequence int    `json:"sequence"`
	Data     string `json:"data"`
}

// NewVolcengineTTS 创建火山引擎 TTS 客户端
func NewVolcengineTTS(cfg VolcengineConfig) (*VolcengineTTS, error) {
	if utils.IsPlaceholder(cfg.AppID) || utils.IsPlaceholder(cfg.AccessToken) {
		return nil, fmt.Errorf("volcengine app id or access token missing: %w", ErrNotConfigured)
	}
	if cfg.URL == "" {
		cfg.URL = defaultVolcengineURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &VolcengineTTS{
		cfg:    cfg,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.Timeout},
	}, nil
}

func (c *VolcengineTTS) Name() string { return "volcengine" }

// Synthesize 依次尝试各资源 ID，资源与发音人不匹配时换下一个。
func (c *VolcengineTTS) Synthesize(ctx context.Context, req Request) (io.ReadCloser, string, error) {
	speaker := c.speaker(req)
	var lastErr error
	for i, resourceID := range resourceCandidates(speaker) {
		audio, err := c.synthesizeWithResource(ctx, req, speaker, resourceID)
		if err == nil {
			if i > 0 {
				log.Infof("[tts] voice %s succeeded with fallback resource %s", speaker, resourceID)
			}
			return io.NopCloser(bytes.NewReader(audio)), "mp3", nil
		}
		if !isResourceMismatch(err) {
			return nil, "", err
		}
		log.Warnf("[tts] voice %s resource %s mismatch: %v", speaker, resourceID, err)
		lastErr = err
	}
	return nil, "", lastErr
}

func (c *VolcengineTTS) speaker(req Request) string {
	if c.cfg.Speaker != "" {
		return c.cfg.Speaker
	}
	byGender, ok := volcengineSpeakers[req.Language]
	if !ok {
		byGender = volcengineSpeakers[language.English]
	}
	if s, ok := byGender[req.Gender]; ok {
		return s
	}
	return byGender[persona.GenderGeneral]
}

func (c *VolcengineTTS) synthesizeWithResource(ctx context.Context, req Request, speaker, resourceID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	connectID := uuid.NewString()
	header := http.Header{}
	header.Set("X-Api-App-Key", c.cfg.AppID)
	header.Set("X-Api-Access-Key", c.cfg.AccessToken)
	header.Set("X-Api-Resource-Id", resourceID)
	header.Set("X-Api-Connect-Id", connectID)

	conn, resp, err := c.dialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TTS websocket: %w", err)
	}
	defer conn.Close()
	if resp != nil {
		if logid := resp.Header.Get("X-Tt-Logid"); logid != "" {
			log.Debugf("[tts] connected with logid: %s", logid)
		}
	}

	// ctx 结束时关闭连接，让阻塞的 ReadMessage 返回。
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	payload, err := json.Marshal(c.buildRequest(req, speaker))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TTS request: %w", err)
	}
	compressed, err := gzipBytes(payload)
	if err != nil {
		return nil, err
	}
	msg := encodeFrame(&frame{
		Type:          frameFullClientRequest,
		Flags:         flagNoSequence,
		Serialization: serializationJSON,
		Compression:   compressionGzip,
		Payload:       compressed,
	})
	if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
		return nil, fmt.Errorf("failed to send TTS request: %w", err)
	}

	var audio bytes.Buffer
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to read TTS response: %w", err)
		}

		f, err := decodeFrame(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TTS message: %w", err)
		}
		body, err := f.payload()
		if err != nil {
			return nil, fmt.Errorf("failed to decompress TTS payload: %w", err)
		}

		switch f.Type {
		case frameError:
			return nil, fmt.Errorf("TTS error %d: %s", f.ErrorCode, string(body))

		case frameAudioOnlyResp:
			audio.Write(body)
			if f.last() {
				return finishAudio(&audio)
			}

		case frameFullServerResp:
			if f.hasEvent() && f.Event == eventSessionFailed {
				return nil, fmt.Errorf("TTS session failed: %s", string(body))
			}
			var serverResp volcengineServerMessage
			if len(body) > 0 {
				if err := json.Unmarshal(body, &serverResp); err != nil {
					log.Debugf("[tts] failed to unmarshal response payload: %v", err)
				} else {
					if serverResp.Code != 0 && serverResp.Code != 3000 {
						return nil, fmt.Errorf("TTS API error %d: %s", serverResp.Code, serverResp.Message)
					}
					if serverResp.Data != "" {
						chunk, err := base64.StdEncoding.DecodeString(serverResp.Data)
						if err != nil {
							return nil, fmt.Errorf("failed to decode base64 audio chunk: %w", err)
						}
						audio.Write(chunk)
					}
				}
			}
			finishedByEvent := f.hasEvent() && f.Event == eventSessionFinished
			if finishedByEvent || f.last() || serverResp.Sequence < 0 {
				return finishAudio(&audio)
			}

		default:
			log.Debugf("[tts] unexpected message type: %d", f.Type)
		}
	}
}

func finishAudio(audio *bytes.Buffer) ([]byte, error) {
	if audio.Len() == 0 {
		return nil, fmt.Errorf("TTS audio is empty")
	}
	return audio.Bytes(), nil
}

func (c *VolcengineTTS) buildRequest(req Request, speaker string) *volcengineRequest {
	out := &volcengineRequest{}
	out.User.UID = uuid.NewString()
	out.ReqParams.Speaker = speaker
	out.ReqParams.Text = req.Text
	out.ReqParams.Language = req.Language.Tag()
	out.ReqParams.AudioParams = volcengineAudioParams{Format: "mp3", SampleRate: 24000}

	prosody := ProsodyFor(req.Mode)
	if prosody.Rate != 1.0 {
		out.ReqParams.AudioParams.SpeedRatio = prosody.Rate
	}
	if prosody.Volume != 1.0 {
		out.ReqParams.AudioParams.VolumeRatio = prosody.Volume
	}

	additions, err := json.Marshal(map[string]any{"disable_markdown_filter": false})
	if err == nil {
		out.ReqParams.Additions = string(additions)
	}
	return out
}

func resourceCandidates(speaker string) []string {
	const (
		defaultResource = "volc.service_type.10029"
		megaResource    = "volc.megatts.default"
		seedResource    = "seed-tts-2.0"
	)

	if strings.HasPrefix(speaker, "S_") {
		return []string{megaResource}
	}
	normalized := strings.ToLower(speaker)
	for _, hint := range []string{"bigtts", "seed", "megatts", "uranus", "jupiter", "mars"} {
		if strings.Contains(normalized, hint) {
			return []string{seedResource, defaultResource}
		}
	}
	return []string{defaultResource, seedResource}
}

func isResourceMismatch(err error) bool {
	return err != nil && strings.Contains(err.Error(), "resource ID is mismatched with speaker related resource")
}
