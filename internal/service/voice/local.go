package voice

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	xlanguage "golang.org/x/text/language"
)

const (
	defaultEspeakBinary = "espeak-ng"
	// 进程被杀死后等待输出管道关闭的上限
	espeakWaitDelay = time.Second
)

// LocalVoice is one voice installed in the local engine.
type LocalVoice struct {
	// Identifier is passed back to the engine to select the voice.
	Identifier string
	Name       string
	Language   string
	Gender     persona.Gender
}

// LocalRequest drives one local synthesis. Rate, Pitch and Volume are ratios around 1.0.
type LocalRequest struct {
	Text        string
	LanguageTag string
	Rate        float64
	Pitch       float64
	Volume      float64
	VoiceName   string
}

// LocalEngine synthesizes speech on the host without network access.
type LocalEngine interface {
	Voices(ctx context.Context) ([]LocalVoice, error)
	Synthesize(ctx context.Context, req LocalRequest) (io.ReadCloser, error)
}

// Espeak 通过 espeak-ng 命令行合成 WAV 音频。
type Espeak struct {
	binary string

	mu     sync.Mutex
	voices []LocalVoice
}

// NewEspeak 查找 espeak-ng 可执行文件，找不到时返回 ErrEngineNotFound。
func NewEspeak(binary string) (*Espeak, error) {
	if binary == "" {
		binary = defaultEspeakBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", binary, ErrEngineNotFound)
	}
	return &Espeak{binary: path}, nil
}

// Voices lists installed voices. The list is cached after the first success.
func (e *Espeak) Voices(ctx context.Context) ([]LocalVoice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.voices != nil {
		return e.voices, nil
	}

	out, err := exec.CommandContext(ctx, e.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list espeak voices: %w", err)
	}
	voices := parseEspeakVoices(out)
	if len(voices) > 0 {
		e.voices = voices
	}
	return voices, nil
}

// Synthesize starts espeak-ng and streams its WAV output. Closing the stream
// before EOF kills the process; closing it after EOF reports a non-zero exit.
func (e *Espeak) Synthesize(ctx context.Context, req LocalRequest) (io.ReadCloser, error) {
	voiceName := req.VoiceName
	if voiceName == "" {
		voiceName = req.LanguageTag
	}
	args := []string{
		"-v", voiceName,
		"-s", strconv.Itoa(scale(175, req.Rate, 80, 450)),
		"-p", strconv.Itoa(scale(50, req.Pitch, 0, 99)),
		"-a", strconv.Itoa(scale(100, req.Volume, 0, 200)),
		"--stdout",
	}

	stream := &processStream{ctx: ctx}
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdin = strings.NewReader(req.Text)
	cmd.Stderr = &stream.stderr
	cmd.WaitDelay = espeakWaitDelay
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open espeak output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start espeak: %w", err)
	}
	stream.cmd, stream.stdout = cmd, stdout
	return stream, nil
}

func scale(base int, ratio float64, lo, hi int) int {
	if ratio <= 0 {
		ratio = 1
	}
	v := int(math.Round(float64(base) * ratio))
	return max(lo, min(hi, v))
}

// processStream 关闭时结束子进程并回收资源。
// 输出读完后进程的退出错误通过 Close 返回；提前关闭或 ctx 取消导致的退出不算失败。
type processStream struct {
	ctx     context.Context
	cmd     *exec.Cmd
	stdout  io.Reader
	stderr  bytes.Buffer
	drained atomic.Bool

	once sync.Once
	err  error
}

func (p *processStream) Read(b []byte) (int, error) {
	n, err := p.stdout.Read(b)
	if err == io.EOF {
		p.drained.Store(true)
	}
	return n, err
}

func (p *processStream) Close() error {
	p.once.Do(func() {
		drained := p.drained.Load()
		if !drained && p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		err := p.cmd.Wait()
		if err == nil || !drained || p.ctx.Err() != nil {
			return
		}
		if msg := strings.TrimSpace(p.stderr.String()); msg != "" {
			p.err = fmt.Errorf("espeak failed: %w: %s", err, msg)
		} else {
			p.err = fmt.Errorf("espeak failed: %w", err)
		}
	})
	return p.err
}

// parseEspeakVoices reads the table printed by `espeak-ng --voices`:
//
//	Pty Language       Age/Gender VoiceName          File                 Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US            (en 2)
func parseEspeakVoices(out []byte) []LocalVoice {
	var voices []LocalVoice
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		v := LocalVoice{
			Identifier: fields[1],
			Language:   fields[1],
			Name:       strings.ReplaceAll(fields[3], "_", " "),
		}
		if _, g, ok := strings.Cut(fields[2], "/"); ok {
			switch strings.ToUpper(g) {
			case "F":
				v.Gender = persona.Female
			case "M":
				v.Gender = persona.Male
			}
		}
		if v.Gender == "" {
			v.Gender = genderFromName(v.Name)
		}
		voices = append(voices, v)
	}
	return voices
}

var (
	femaleHints = []string{"female", "woman", "girl", "femme", "mujer", "frau"}
	maleHints   = []string{"male", "man", "boy", "homme", "hombre", "mann"}
)

// genderFromName guesses a voice gender from its display name.
func genderFromName(name string) persona.Gender {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-' || r == '(' || r == ')'
	})
	for _, w := range words {
		for _, h := range femaleHints {
			if w == h {
				return persona.Female
			}
		}
	}
	for _, w := range words {
		for _, h := range maleHints {
			if w == h {
				return persona.Male
			}
		}
	}
	return persona.GenderGeneral
}

// SelectVoice picks the installed voice closest to tag, preferring the requested gender.
// It reports false when no installed voice speaks the language.
func SelectVoice(voices []LocalVoice, tag string, gender persona.Gender) (LocalVoice, bool) {
	want, err := xlanguage.Parse(tag)
	if err != nil || len(voices) == 0 {
		return LocalVoice{}, false
	}

	supported := make([]xlanguage.Tag, 0, len(voices))
	owners := make([]int, 0, len(voices))
	for i, v := range voices {
		t, err := xlanguage.Parse(v.Language)
		if err != nil {
			continue
		}
		supported = append(supported, t)
		owners = append(owners, i)
	}
	if len(supported) == 0 {
		return LocalVoice{}, false
	}

	_, idx, conf := xlanguage.NewMatcher(supported).Match(want)
	if conf == xlanguage.No {
		return LocalVoice{}, false
	}
	best := voices[owners[idx]]
	if gender == persona.GenderGeneral || best.Gender == gender {
		return best, true
	}

	// 同一语言下优先选择性别一致的声音。
	bestBase, _ := supported[idx].Base()
	for i, t := range supported {
		base, _ := t.Base()
		if base == bestBase && voices[owners[i]].Gender == gender {
			return voices[owners[i]], true
		}
	}
	return best, true
}

// variantFor appends an espeak voice variant when the chosen voice has the wrong gender.
func variantFor(v LocalVoice, gender persona.Gender) string {
	if gender == persona.Female && v.Gender != persona.Female {
		return v.Identifier + "+f3"
	}
	if gender == persona.Male && v.Gender == persona.Female {
		return v.Identifier + "+m3"
	}
	return v.Identifier
}
