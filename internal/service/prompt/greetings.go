package prompt

import (
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

var greetings = map[persona.Mode]map[language.Language]string{
	persona.Coach: {
		language.English:    "Hey, I'm Max! Ready to make some progress today? Tell me what you're working toward.",
		language.Spanish:    "¡Hola, soy Max! ¿Listo para avanzar hoy? Cuéntame qué meta tienes en mente.",
		language.French:     "Salut, moi c'est Max ! Prêt à avancer aujourd'hui ? Dis-moi quel objectif tu as en tête.",
		language.German:     "Hey, ich bin Max! Bereit, heute etwas zu bewegen? Erzähl mir, woran du gerade arbeitest.",
		language.Italian:    "Ciao, sono Max! Pronto a fare progressi oggi? Dimmi a quale obiettivo stai lavorando.",
		language.Portuguese: "Oi, eu sou o Max! Pronto para avançar hoje? Me conta qual meta você tem em mente.",
		language.Chinese:    "嗨，我是 Max！准备好今天取得一点进步了吗？告诉我你正在努力的目标吧。",
		language.Japanese:   "こんにちは、Maxです！今日も一歩前に進みましょう。今取り組んでいる目標を教えてください。",
		language.Korean:     "안녕하세요, Max예요! 오늘도 한 걸음 나아가 볼까요? 지금 어떤 목표를 향해 가고 있는지 말해 주세요.",
		language.Arabic:     "مرحباً، أنا ماكس! هل أنت مستعد لتحقيق بعض التقدم اليوم؟ أخبرني ما الهدف الذي تعمل عليه.",
		language.Hindi:      "नमस्ते, मैं मैक्स हूँ! आज कुछ आगे बढ़ने के लिए तैयार हैं? बताइए आप किस लक्ष्य पर काम कर रहे हैं।",
		language.Russian:    "Привет, я Макс! Готов сегодня продвинуться вперёд? Расскажи, к какой цели ты идёшь.",
	},
	persona.Therapist: {
		language.English:    "Hello, I'm Dr. Rivera. This is a safe space, so take your time. How are you feeling today?",
		language.Spanish:    "Hola, soy la Dra. Rivera. Este es un espacio seguro, tómate tu tiempo. ¿Cómo te sientes hoy?",
		language.French:     "Bonjour, je suis la Dre Rivera. Ici, tu es en sécurité, prends ton temps. Comment te sens-tu aujourd'hui ?",
		language.German:     "Hallo, ich bin Dr. Rivera. Hier ist ein sicherer Ort, nimm dir Zeit. Wie fühlst du dich heute?",
		language.Italian:    "Ciao, sono la Dott.ssa Rivera. Questo è uno spazio sicuro, prenditi il tuo tempo. Come ti senti oggi?",
		language.Portuguese: "Olá, eu sou a Dra. Rivera. Aqui é um espaço seguro, vá no seu tempo. Como você está se sentindo hoje?",
		language.Chinese:    "你好，我是 Rivera 医生。这里是一个安全的空间，慢慢来。你今天感觉怎么样？",
		language.Japanese:   "こんにちは、リベラです。ここは安心して話せる場所です。ゆっくりで大丈夫ですよ。今日の気分はいかがですか？",
		language.Korean:     "안녕하세요, 리베라 박사예요. 이곳은 안전한 공간이니 천천히 하셔도 괜찮아요. 오늘 기분은 어떠세요?",
		language.Arabic:     "مرحباً، أنا الدكتورة ريفيرا. هذه مساحة آمنة، خذ وقتك. كيف تشعر اليوم؟",
		language.Hindi:      "नमस्ते, मैं डॉ. रिवेरा हूँ। यह एक सुरक्षित जगह है, आराम से बात कीजिए। आज आप कैसा महसूस कर रहे हैं?",
		language.Russian:    "Здравствуй, я доктор Ривера. Здесь безопасно, не торопись. Как ты себя сегодня чувствуешь?",
	},
	persona.Tutor: {
		language.English:    "Hi, I'm Professor Lee. What would you like to learn today? We'll go one step at a time.",
		language.Spanish:    "Hola, soy el profesor Lee. ¿Qué te gustaría aprender hoy? Iremos paso a paso.",
		language.French:     "Bonjour, je suis le professeur Lee. Qu'aimerais-tu apprendre aujourd'hui ? On avancera pas à pas.",
		language.German:     "Hallo, ich bin Professor Lee. Was möchtest du heute lernen? Wir gehen Schritt für Schritt vor.",
		language.Italian:    "Ciao, sono il professor Lee. Cosa ti piacerebbe imparare oggi? Andremo passo dopo passo.",
		language.Portuguese: "Oi, eu sou o professor Lee. O que você gostaria de aprender hoje? Vamos passo a passo.",
		language.Chinese:    "你好，我是李老师。今天想学点什么？我们一步一步来。",
		language.Japanese:   "こんにちは、リー先生です。今日は何を学びたいですか？一歩ずつ進めていきましょう。",
		language.Korean:     "안녕하세요, 리 교수예요. 오늘은 무엇을 배우고 싶나요? 한 단계씩 차근차근 해 봐요.",
		language.Arabic:     "مرحباً، أنا البروفيسور لي. ماذا تود أن تتعلم اليوم؟ سنمضي خطوة بخطوة.",
		language.Hindi:      "नमस्ते, मैं प्रोफेसर ली हूँ। आज आप क्या सीखना चाहेंगे? हम एक-एक कदम आगे बढ़ेंगे।",
		language.Russian:    "Здравствуй, я профессор Ли. Что бы ты хотел изучить сегодня? Будем двигаться шаг за шагом.",
	},
	persona.Friend: {
		language.English:    "Hey you! It's Sam. What's new? I've got all the time in the world.",
		language.Spanish:    "¡Hola! Soy Sam. ¿Qué hay de nuevo? Tengo todo el tiempo del mundo.",
		language.French:     "Coucou ! C'est Sam. Quoi de neuf ? J'ai tout mon temps.",
		language.German:     "Hey du! Hier ist Sam. Was gibt's Neues? Ich hab alle Zeit der Welt.",
		language.Italian:    "Ehi! Sono Sam. Che c'è di nuovo? Ho tutto il tempo del mondo.",
		language.Portuguese: "E aí! É o Sam. Quais as novidades? Tenho todo o tempo do mundo.",
		language.Chinese:    "嘿！我是 Sam。最近有什么新鲜事吗？我有的是时间陪你聊。",
		language.Japanese:   "やあ！Samだよ。最近どう？時間はたっぷりあるから、なんでも話してね。",
		language.Korean:     "안녕! 나 Sam이야. 요즘 어때? 시간 많으니까 편하게 얘기해.",
		language.Arabic:     "أهلاً! أنا سام. ما الجديد؟ لدي كل الوقت لك.",
		language.Hindi:      "अरे! मैं सैम हूँ। क्या नया चल रहा है? मेरे पास पूरा समय है।",
		language.Russian:    "Привет! Это Сэм. Что нового? У меня куча времени, рассказывай.",
	},
	persona.General: {
		language.English:    "Hi, I'm Aria. How can I help you today?",
		language.Spanish:    "Hola, soy Aria. ¿En qué puedo ayudarte hoy?",
		language.French:     "Bonjour, je suis Aria. Comment puis-je t'aider aujourd'hui ?",
		language.German:     "Hallo, ich bin Aria. Wie kann ich dir heute helfen?",
		language.Italian:    "Ciao, sono Aria. Come posso aiutarti oggi?",
		language.Portuguese: "Oi, eu sou a Aria. Como posso te ajudar hoje?",
		language.Chinese:    "你好，我是 Aria。今天有什么可以帮你的吗？",
		language.Japanese:   "こんにちは、Ariaです。今日はどんなお手伝いができますか？",
		language.Korean:     "안녕하세요, Aria예요. 오늘 무엇을 도와드릴까요?",
		language.Arabic:     "مرحباً، أنا آريا. كيف يمكنني مساعدتك اليوم؟",
		language.Hindi:      "नमस्ते, मैं आरिया हूँ। आज मैं आपकी क्या मदद कर सकती हूँ?",
		language.Russian:    "Привет, я Ария. Чем могу помочь сегодня?",
	},
}

// friendByAge 只覆盖部分语言，缺失时回退到该语言的默认 friend 问候。
var friendByAge = map[language.Language]map[persona.AgeVariant]string{
	language.English: {
		persona.AgeChild: "Hi friend! I'm Sam! Wanna tell me about the coolest thing that happened today?",
		persona.AgeTeen:  "Yo, it's Sam. What's up? School, games, drama, I'm here for all of it.",
	},
	language.Spanish: {
		persona.AgeChild: "¡Hola, amiguito! Soy Sam. ¿Me cuentas lo más divertido que te pasó hoy?",
		persona.AgeTeen:  "¿Qué onda? Soy Sam. ¿Cómo va todo? Clases, juegos o lo que sea, aquí estoy.",
	},
	language.French: {
		persona.AgeChild: "Coucou mon ami ! C'est Sam ! Tu me racontes le truc le plus rigolo de ta journée ?",
		persona.AgeTeen:  "Salut, c'est Sam. Ça roule ? Les cours, les jeux, les potins, je t'écoute.",
	},
	language.Portuguese: {
		persona.AgeChild: "Oi, amiguinho! Eu sou o Sam! Me conta a coisa mais legal que aconteceu hoje?",
		persona.AgeTeen:  "E aí, é o Sam. Beleza? Escola, jogos, fofoca, pode mandar.",
	},
}

// Greeting returns the opening line for a persona. Unsupported languages use
// the English entry, and the friend persona honors child and teen variants.
func Greeting(mode persona.Mode, lang language.Language, age persona.AgeVariant) string {
	if !lang.Supported() {
		lang = language.Default
	}
	byLang, ok := greetings[mode]
	if !ok {
		byLang = greetings[persona.General]
	}

	if mode == persona.Friend && (age == persona.AgeChild || age == persona.AgeTeen) {
		if variants, ok := friendByAge[lang]; ok {
			if text, ok := variants[age]; ok {
				return text
			}
		}
	}

	if text, ok := byLang[lang]; ok && text != "" {
		return text
	}
	return byLang[language.Default]
}
