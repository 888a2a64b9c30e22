package emotion

import (
	"math"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/lexicon"
)

// Label 表示识别出的情绪类别。
type Label string

const (
	Neutral  Label = "neutral"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Angry    Label = "angry"
	Anxious  Label = "anxious"
	Confused Label = "confused"
	Excited  Label = "excited"
)

// Context 是单轮对话的情绪分析结果，不做持久化。
type Context struct {
	DetectedEmotion Label    `json:"detectedEmotion"`
	Confidence      int      `json:"confidence"`
	Sentiment       float64  `json:"sentiment"`
	Triggers        []string `json:"triggers,omitempty"`
}

type category struct {
	label    Label
	keywords []string
}

// 声明顺序即平分时的优先级。
var categories = []category{
	{label: Happy, keywords: []string{
		"happy", "glad", "great", "awesome", "wonderful", "love", "thanks", "thank you", "joy", "good news",
		"feliz", "contento", "contenta", "alegre", "heureux", "heureuse", "glücklich", "froh",
		"felice", "开心", "高兴", "快乐", "哈哈",
	}},
	{label: Sad, keywords: []string{
		"sad", "unhappy", "depressed", "lonely", "cry", "crying", "heartbroken", "miserable", "hurt",
		"triste", "deprimido", "deprimida", "llorar", "tristesse", "déprimé", "seul",
		"traurig", "einsam", "depresso", "sozinho", "chorar", "难过", "伤心", "孤单", "失落",
	}},
	{label: Angry, keywords: []string{
		"angry", "mad", "furious", "annoyed", "hate", "pissed", "rage", "frustrated", "irritated",
		"enojado", "enojada", "furioso", "furiosa", "rabia", "en colère", "fâché", "wütend", "sauer",
		"arrabbiato", "arrabbiata", "irritado", "生气", "愤怒", "气死",
	}},
	{label: Anxious, keywords: []string{
		"anxious", "worried", "nervous", "scared", "afraid", "stressed", "panic", "overwhelmed", "fear",
		"ansioso", "ansiosa", "preocupado", "preocupada", "nervioso", "miedo", "inquiet", "stressé",
		"angst", "besorgt", "nervös", "preoccupato", "ansia", "com medo", "焦虑", "担心", "害怕",
	}},
	{label: Confused, keywords: []string{
		"confused", "lost", "don't understand", "unsure", "unclear", "puzzled", "what do you mean", "no idea",
		"confundido", "confundida", "no entiendo", "perdido", "confus", "je ne comprends pas",
		"verwirrt", "verstehe nicht", "confuso", "non capisco", "não entendo", "困惑", "不明白", "不懂",
	}},
	{label: Excited, keywords: []string{
		"excited", "can't wait", "amazing", "thrilled", "pumped", "incredible", "wow", "so cool",
		"emocionado", "emocionada", "increíble", "genial", "excité", "génial", "aufgeregt",
		"entusiasta", "animado", "incrível", "兴奋", "激动", "期待",
	}},
}

var (
	positive = map[Label]bool{Happy: true, Excited: true}
	negative = map[Label]bool{Sad: true, Angry: true, Anxious: true}
)

// Detect 通过关键词计分推断情绪。得分最高者胜出，平分按声明顺序取先者；
// 置信度为命中数占该类词表大小的百分比。
func Detect(text string) Context {
	normalized := lexicon.Normalize(text)
	if normalized.Empty() {
		return Context{DetectedEmotion: Neutral}
	}

	var (
		best     category
		bestHits []string
		triggers []string
		posHits  int
		negHits  int
	)
	for _, c := range categories {
		hits := normalized.Matches(c.keywords)
		if len(hits) == 0 {
			continue
		}
		triggers = append(triggers, hits...)
		if positive[c.label] {
			posHits += len(hits)
		}
		if negative[c.label] {
			negHits += len(hits)
		}
		if len(hits) > len(bestHits) {
			best = c
			bestHits = hits
		}
	}

	total := posHits + negHits
	sentiment := float64(posHits-negHits) / float64(max(total, 1))

	if len(bestHits) == 0 {
		return Context{DetectedEmotion: Neutral, Sentiment: sentiment}
	}

	confidence := int(math.Round(100 * float64(len(bestHits)) / float64(uniqueCount(best.keywords))))
	return Context{
		DetectedEmotion: best.label,
		Confidence:      min(confidence, 100),
		Sentiment:       sentiment,
		Triggers:        triggers,
	}
}

func uniqueCount(words []string) int {
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		seen[w] = struct{}{}
	}
	return max(len(seen), 1)
}
