package ai

import (
	"github.com/zhouzirui/persona-voice/backend/internal/analysis/emotion"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

type bucketReplies map[emotion.Bucket][]string

// fallbackBank 是离线回复库：mode → language → bucket。
// 非拉丁语系只提供 general，查找时先回退到同语言的 general，再回退到英文。
var fallbackBank = map[persona.Mode]map[language.Language]bucketReplies{
	persona.Coach: {
		language.English: {
			emotion.BucketNeutral: {
				"Let's pick one small thing you can do today. What's the first step that comes to mind?",
				"Progress beats perfection. What's one goal you'd like to move forward this week?",
			},
			emotion.BucketDistress: {
				"That sounds tough, and it's okay to feel that way. Let's break it into something small you can handle right now. What would help most?",
				"Setbacks happen to everyone who's trying. What's one thing still within your control today?",
			},
			emotion.BucketPositive: {
				"That's a real win, and you earned it! What do you want to build on next?",
				"Love that energy! Let's use it. What's the next milestone you're aiming for?",
			},
		},
		language.Spanish: {
			emotion.BucketNeutral: {
				"Elijamos una cosa pequeña que puedas hacer hoy. ¿Cuál es el primer paso que se te ocurre?",
				"El progreso vale más que la perfección. ¿Qué meta quieres avanzar esta semana?",
			},
			emotion.BucketDistress: {
				"Suena difícil, y está bien sentirse así. Vamos a dividirlo en algo pequeño que puedas manejar ahora. ¿Qué te ayudaría más?",
				"Los tropiezos le pasan a todo el que lo intenta. ¿Qué sigue estando bajo tu control hoy?",
			},
			emotion.BucketPositive: {
				"¡Eso es un logro de verdad y te lo ganaste! ¿Sobre qué quieres construir ahora?",
				"¡Me encanta esa energía! Aprovechémosla. ¿Cuál es tu próxima meta?",
			},
		},
		language.French: {
			emotion.BucketNeutral: {
				"Choisissons une petite chose à faire aujourd'hui. Quelle est la première étape qui te vient ?",
				"Le progrès compte plus que la perfection. Quel objectif veux-tu faire avancer cette semaine ?",
			},
			emotion.BucketDistress: {
				"Ça a l'air dur, et c'est normal de le ressentir. Découpons ça en quelque chose de petit. Qu'est-ce qui t'aiderait le plus ?",
				"Les revers arrivent à tous ceux qui essaient. Qu'est-ce qui reste sous ton contrôle aujourd'hui ?",
			},
			emotion.BucketPositive: {
				"C'est une vraie victoire, bravo à toi ! Sur quoi veux-tu construire ensuite ?",
				"J'adore cette énergie ! Profitons-en. Quelle est ta prochaine étape ?",
			},
		},
		language.German: {
			emotion.BucketNeutral: {
				"Lass uns eine kleine Sache für heute auswählen. Was ist der erste Schritt, der dir einfällt?",
				"Fortschritt schlägt Perfektion. Welches Ziel willst du diese Woche voranbringen?",
			},
			emotion.BucketDistress: {
				"Das klingt schwer, und es ist okay, so zu fühlen. Lass es uns in etwas Kleines aufteilen. Was würde dir gerade am meisten helfen?",
				"Rückschläge passieren allen, die es versuchen. Was liegt heute noch in deiner Hand?",
			},
			emotion.BucketPositive: {
				"Das ist ein echter Erfolg, den hast du dir verdient! Worauf willst du als Nächstes aufbauen?",
				"Ich liebe diese Energie! Lass sie uns nutzen. Was ist dein nächstes Ziel?",
			},
		},
		language.Italian: {
			emotion.BucketNeutral: {
				"Scegliamo una piccola cosa da fare oggi. Qual è il primo passo che ti viene in mente?",
				"Il progresso conta più della perfezione. Quale obiettivo vuoi far avanzare questa settimana?",
			},
			emotion.BucketDistress: {
				"Sembra dura, ed è normale sentirsi così. Dividiamola in qualcosa di piccolo. Cosa ti aiuterebbe di più adesso?",
				"Gli ostacoli capitano a chiunque ci provi. Cosa è ancora sotto il tuo controllo oggi?",
			},
			emotion.BucketPositive: {
				"È una vera vittoria e te la sei meritata! Su cosa vuoi costruire adesso?",
				"Adoro questa energia! Usiamola. Qual è il tuo prossimo traguardo?",
			},
		},
		language.Portuguese: {
			emotion.BucketNeutral: {
				"Vamos escolher uma coisa pequena para fazer hoje. Qual é o primeiro passo que vem à sua cabeça?",
				"Progresso vale mais que perfeição. Qual meta você quer avançar esta semana?",
			},
			emotion.BucketDistress: {
				"Parece difícil, e tudo bem se sentir assim. Vamos dividir em algo pequeno. O que mais te ajudaria agora?",
				"Tropeços acontecem com todo mundo que tenta. O que ainda está sob seu controle hoje?",
			},
			emotion.BucketPositive: {
				"Isso é uma conquista de verdade e você mereceu! Sobre o que quer construir agora?",
				"Adoro essa energia! Vamos aproveitar. Qual é a sua próxima meta?",
			},
		},
	},
	persona.Therapist: {
		language.English: {
			emotion.BucketNeutral: {
				"I'm here and listening. What's been on your mind lately?",
				"Take your time. How have things been for you this week?",
			},
			emotion.BucketDistress: {
				"That sounds really heavy, and it makes sense that you feel this way. Would you like to tell me more about what's been happening?",
				"Thank you for sharing that with me. Your feelings are valid. What feels hardest right now?",
			},
			emotion.BucketPositive: {
				"It's lovely to hear that. What do you think helped things feel better?",
				"I'm glad you're feeling this way. How does it feel to notice that?",
			},
		},
		language.Spanish: {
			emotion.BucketNeutral: {
				"Estoy aquí y te escucho. ¿Qué has tenido en mente últimamente?",
				"Tómate tu tiempo. ¿Cómo te ha ido esta semana?",
			},
			emotion.BucketDistress: {
				"Eso suena muy pesado, y tiene sentido que te sientas así. ¿Quieres contarme más sobre lo que ha pasado?",
				"Gracias por compartirlo conmigo. Lo que sientes es válido. ¿Qué es lo más difícil ahora mismo?",
			},
			emotion.BucketPositive: {
				"Qué bonito escuchar eso. ¿Qué crees que ayudó a que te sintieras mejor?",
				"Me alegra que te sientas así. ¿Cómo es darte cuenta de ello?",
			},
		},
		language.French: {
			emotion.BucketNeutral: {
				"Je suis là et je t'écoute. Qu'est-ce qui t'occupe l'esprit ces temps-ci ?",
				"Prends ton temps. Comment s'est passée ta semaine ?",
			},
			emotion.BucketDistress: {
				"Ça a l'air vraiment lourd, et c'est compréhensible de ressentir ça. Veux-tu m'en dire plus sur ce qui se passe ?",
				"Merci de me confier ça. Ce que tu ressens est légitime. Qu'est-ce qui est le plus difficile en ce moment ?",
			},
			emotion.BucketPositive: {
				"C'est bon à entendre. Qu'est-ce qui, selon toi, a aidé ?",
				"Je suis content que tu te sentes ainsi. Qu'est-ce que ça te fait de le remarquer ?",
			},
		},
		language.German: {
			emotion.BucketNeutral: {
				"Ich bin da und höre dir zu. Was beschäftigt dich in letzter Zeit?",
				"Nimm dir Zeit. Wie ist deine Woche gelaufen?",
			},
			emotion.BucketDistress: {
				"Das klingt wirklich schwer, und es ist verständlich, dass du dich so fühlst. Möchtest du mir mehr erzählen?",
				"Danke, dass du das mit mir teilst. Deine Gefühle sind berechtigt. Was ist gerade am schwersten?",
			},
			emotion.BucketPositive: {
				"Das ist schön zu hören. Was hat deiner Meinung nach geholfen?",
				"Ich freue mich, dass es dir so geht. Wie fühlt es sich an, das zu bemerken?",
			},
		},
		language.Italian: {
			emotion.BucketNeutral: {
				"Sono qui e ti ascolto. Cosa ti passa per la mente ultimamente?",
				"Prenditi il tuo tempo. Com'è andata questa settimana?",
			},
			emotion.BucketDistress: {
				"Sembra davvero pesante, ed è comprensibile che tu ti senta così. Vuoi raccontarmi di più?",
				"Grazie per avermelo detto. Quello che provi è valido. Cosa ti pesa di più in questo momento?",
			},
			emotion.BucketPositive: {
				"Che bello sentirlo. Cosa pensi che ti abbia aiutato?",
				"Sono contenta che tu ti senta così. Com'è accorgersene?",
			},
		},
		language.Portuguese: {
			emotion.BucketNeutral: {
				"Estou aqui ouvindo você. O que tem passado pela sua cabeça ultimamente?",
				"Vá no seu tempo. Como foi a sua semana?",
			},
			emotion.BucketDistress: {
				"Isso parece muito pesado, e faz sentido você se sentir assim. Quer me contar mais sobre o que está acontecendo?",
				"Obrigada por dividir isso comigo. O que você sente é válido. O que está mais difícil agora?",
			},
			emotion.BucketPositive: {
				"Que bom ouvir isso. O que você acha que ajudou?",
				"Fico feliz que você esteja se sentindo assim. Como é perceber isso?",
			},
		},
	},
	persona.Tutor: {
		language.English: {
			emotion.BucketNeutral: {
				"Good question. Let's start with the basics and build up from there. What part would you like to tackle first?",
				"Let's work through it step by step. Can you tell me what you already know about it?",
			},
			emotion.BucketDistress: {
				"It's completely normal to find this confusing at first. Let's slow down and go one small piece at a time. Which part lost you?",
				"No worries, mistakes are how we learn. Let's try a simpler example first.",
			},
			emotion.BucketPositive: {
				"Great work! You're getting the hang of it. Ready for a slightly harder one?",
				"Exactly right. Can you explain it back to me in your own words?",
			},
		},
		language.Spanish: {
			emotion.BucketNeutral: {
				"Buena pregunta. Empecemos por lo básico y avancemos desde ahí. ¿Qué parte quieres ver primero?",
				"Vamos paso a paso. ¿Qué sabes ya sobre el tema?",
			},
			emotion.BucketDistress: {
				"Es normal que al principio resulte confuso. Vamos más despacio, una parte a la vez. ¿En qué punto te perdiste?",
				"Tranquilo, los errores son parte de aprender. Probemos primero con un ejemplo más sencillo.",
			},
			emotion.BucketPositive: {
				"¡Muy bien! Ya le estás agarrando el truco. ¿Listo para uno un poco más difícil?",
				"Exacto. ¿Puedes explicármelo con tus propias palabras?",
			},
		},
		language.French: {
			emotion.BucketNeutral: {
				"Bonne question. Commençons par les bases. Par quelle partie veux-tu commencer ?",
				"Avançons pas à pas. Que sais-tu déjà sur le sujet ?",
			},
			emotion.BucketDistress: {
				"C'est normal de trouver ça confus au début. Ralentissons et prenons un morceau à la fois. À quel moment t'es-tu perdu ?",
				"Pas de souci, on apprend de ses erreurs. Essayons d'abord un exemple plus simple.",
			},
			emotion.BucketPositive: {
				"Excellent travail ! Tu commences à bien comprendre. Prêt pour un exercice un peu plus difficile ?",
				"Exactement. Peux-tu me l'expliquer avec tes propres mots ?",
			},
		},
		language.German: {
			emotion.BucketNeutral: {
				"Gute Frage. Fangen wir mit den Grundlagen an. Welchen Teil möchtest du zuerst angehen?",
				"Gehen wir Schritt für Schritt vor. Was weißt du schon darüber?",
			},
			emotion.BucketDistress: {
				"Es ist ganz normal, das am Anfang verwirrend zu finden. Gehen wir langsamer vor, Stück für Stück. Wo hast du den Faden verloren?",
				"Kein Problem, aus Fehlern lernt man. Probieren wir zuerst ein einfacheres Beispiel.",
			},
			emotion.BucketPositive: {
				"Sehr gut! Du hast den Dreh raus. Bereit für eine etwas schwierigere Aufgabe?",
				"Genau richtig. Kannst du es mir mit deinen eigenen Worten erklären?",
			},
		},
		language.Italian: {
			emotion.BucketNeutral: {
				"Bella domanda. Partiamo dalle basi. Da quale parte vuoi cominciare?",
				"Procediamo passo dopo passo. Cosa sai già sull'argomento?",
			},
			emotion.BucketDistress: {
				"È normale trovarlo confuso all'inizio. Rallentiamo e vediamo un pezzo alla volta. Dove ti sei perso?",
				"Tranquillo, si impara dagli errori. Proviamo prima con un esempio più semplice.",
			},
			emotion.BucketPositive: {
				"Ottimo lavoro! Stai capendo il meccanismo. Pronto per uno un po' più difficile?",
				"Esatto. Puoi spiegarmelo con parole tue?",
			},
		},
		language.Portuguese: {
			emotion.BucketNeutral: {
				"Boa pergunta. Vamos começar pelo básico. Por qual parte você quer começar?",
				"Vamos passo a passo. O que você já sabe sobre o assunto?",
			},
			emotion.BucketDistress: {
				"É normal achar isso confuso no começo. Vamos com calma, uma parte de cada vez. Em que ponto você se perdeu?",
				"Sem problema, a gente aprende com os erros. Vamos tentar primeiro um exemplo mais simples.",
			},
			emotion.BucketPositive: {
				"Muito bem! Você está pegando o jeito. Pronto para um um pouco mais difícil?",
				"Exatamente. Consegue me explicar com suas próprias palavras?",
			},
		},
	},
	persona.Friend: {
		language.English: {
			emotion.BucketNeutral: {
				"Haha, tell me more! What else is going on with you?",
				"Oh nice, I'm all ears. How's the rest of your day looking?",
			},
			emotion.BucketDistress: {
				"Aw, I'm sorry, that really sucks. I'm here for you. Want to vent about it?",
				"That sounds rough. You don't have to deal with it alone. What happened?",
			},
			emotion.BucketPositive: {
				"No way, that's amazing! I'm so happy for you. Tell me everything!",
				"Yes! That's the best news. How are you going to celebrate?",
			},
		},
		language.Spanish: {
			emotion.BucketNeutral: {
				"¡Jaja, cuéntame más! ¿Qué más te anda pasando?",
				"¡Qué bien! Soy todo oídos. ¿Cómo va el resto de tu día?",
			},
			emotion.BucketDistress: {
				"Ay, lo siento mucho, eso es horrible. Aquí estoy para ti. ¿Quieres desahogarte?",
				"Suena duro. No tienes que pasarlo solo. ¿Qué pasó?",
			},
			emotion.BucketPositive: {
				"¡No puede ser, qué increíble! Me alegro muchísimo por ti. ¡Cuéntamelo todo!",
				"¡Sí! Esa es la mejor noticia. ¿Cómo lo vas a celebrar?",
			},
		},
		language.French: {
			emotion.BucketNeutral: {
				"Haha, raconte-moi tout ! Quoi d'autre de neuf ?",
				"Oh cool, je t'écoute. Et le reste de ta journée, ça se passe comment ?",
			},
			emotion.BucketDistress: {
				"Oh, je suis désolé, c'est vraiment nul. Je suis là pour toi. Tu veux en parler ?",
				"Ça a l'air dur. Tu n'es pas obligé de gérer ça seul. Qu'est-ce qui s'est passé ?",
			},
			emotion.BucketPositive: {
				"Trop bien, c'est génial ! Je suis super content pour toi. Raconte !",
				"Oui ! C'est la meilleure nouvelle. Tu vas fêter ça comment ?",
			},
		},
		language.German: {
			emotion.BucketNeutral: {
				"Haha, erzähl mehr! Was ist sonst so los bei dir?",
				"Oh cool, ich bin ganz Ohr. Wie läuft der Rest deines Tages?",
			},
			emotion.BucketDistress: {
				"Oh nein, das tut mir leid, das ist echt mies. Ich bin für dich da. Willst du dich auskotzen?",
				"Das klingt hart. Da musst du nicht allein durch. Was ist passiert?",
			},
			emotion.BucketPositive: {
				"Wie krass, das ist ja großartig! Ich freu mich so für dich. Erzähl alles!",
				"Ja! Das sind die besten Nachrichten. Wie willst du feiern?",
			},
		},
		language.Italian: {
			emotion.BucketNeutral: {
				"Ahah, raccontami di più! Cos'altro succede?",
				"Che bello, ti ascolto. Come va il resto della giornata?",
			},
			emotion.BucketDistress: {
				"Oh, mi dispiace, è proprio brutto. Sono qui per te. Vuoi sfogarti?",
				"Sembra dura. Non devi affrontarla da solo. Cos'è successo?",
			},
			emotion.BucketPositive: {
				"Non ci credo, è fantastico! Sono felicissimo per te. Raccontami tutto!",
				"Sì! È la notizia migliore. Come festeggi?",
			},
		},
		language.Portuguese: {
			emotion.BucketNeutral: {
				"Haha, me conta mais! O que mais está rolando?",
				"Que legal, sou todo ouvidos. Como está o resto do seu dia?",
			},
			emotion.BucketDistress: {
				"Poxa, sinto muito, que chato. Estou aqui com você. Quer desabafar?",
				"Parece difícil. Você não precisa passar por isso sozinho. O que aconteceu?",
			},
			emotion.BucketPositive: {
				"Não acredito, que incrível! Fico muito feliz por você. Me conta tudo!",
				"Isso! É a melhor notícia. Como você vai comemorar?",
			},
		},
	},
	persona.General: {
		language.English: {
			emotion.BucketNeutral: {
				"I'm having trouble reaching my usual brain right now, but I'm still here. Could you tell me a bit more about what you need?",
				"That's interesting. What would you like to know more about?",
			},
			emotion.BucketDistress: {
				"I'm sorry you're dealing with that. I'm here to help however I can. What would make things a little easier?",
				"That sounds frustrating. Let's see what we can figure out together.",
			},
			emotion.BucketPositive: {
				"That's great to hear! What's next for you?",
				"Wonderful! Is there anything I can help you with today?",
			},
		},
		language.Spanish: {
			emotion.BucketNeutral: {
				"Ahora mismo me cuesta conectar, pero sigo aquí. ¿Puedes contarme un poco más de lo que necesitas?",
				"Qué interesante. ¿Sobre qué te gustaría saber más?",
			},
			emotion.BucketDistress: {
				"Siento que estés pasando por eso. Estoy aquí para ayudarte. ¿Qué haría las cosas un poco más fáciles?",
				"Suena frustrante. Veamos qué podemos resolver juntos.",
			},
			emotion.BucketPositive: {
				"¡Qué bueno escuchar eso! ¿Qué sigue para ti?",
				"¡Maravilloso! ¿Hay algo en lo que pueda ayudarte hoy?",
			},
		},
		language.French: {
			emotion.BucketNeutral: {
				"J'ai un peu de mal à me connecter en ce moment, mais je suis là. Peux-tu m'en dire plus sur ce dont tu as besoin ?",
				"Intéressant. Sur quoi aimerais-tu en savoir plus ?",
			},
			emotion.BucketDistress: {
				"Je suis désolée que tu vives ça. Je suis là pour t'aider. Qu'est-ce qui rendrait les choses un peu plus simples ?",
				"Ça a l'air frustrant. Voyons ce qu'on peut trouver ensemble.",
			},
			emotion.BucketPositive: {
				"Ça fait plaisir à entendre ! Et maintenant ?",
				"Formidable ! Je peux t'aider avec quelque chose aujourd'hui ?",
			},
		},
		language.German: {
			emotion.BucketNeutral: {
				"Ich habe gerade etwas Verbindungsprobleme, bin aber noch da. Kannst du mir mehr darüber sagen, was du brauchst?",
				"Interessant. Worüber möchtest du mehr erfahren?",
			},
			emotion.BucketDistress: {
				"Es tut mir leid, dass du das gerade erlebst. Ich helfe dir, so gut ich kann. Was würde es ein bisschen leichter machen?",
				"Das klingt frustrierend. Lass uns gemeinsam schauen, was wir tun können.",
			},
			emotion.BucketPositive: {
				"Das freut mich zu hören! Was steht als Nächstes an?",
				"Wunderbar! Kann ich dir heute bei etwas helfen?",
			},
		},
		language.Italian: {
			emotion.BucketNeutral: {
				"In questo momento faccio fatica a collegarmi, ma sono qui. Puoi dirmi qualcosa di più su ciò che ti serve?",
				"Interessante. Su cosa vorresti saperne di più?",
			},
			emotion.BucketDistress: {
				"Mi dispiace che tu stia vivendo questo. Sono qui per aiutarti. Cosa renderebbe le cose un po' più facili?",
				"Sembra frustrante. Vediamo cosa possiamo capire insieme.",
			},
			emotion.BucketPositive: {
				"Che bello sentirlo! Cosa c'è dopo per te?",
				"Meraviglioso! Posso aiutarti con qualcosa oggi?",
			},
		},
		language.Portuguese: {
			emotion.BucketNeutral: {
				"Estou com dificuldade de conexão agora, mas continuo aqui. Pode me contar um pouco mais do que você precisa?",
				"Que interessante. Sobre o que você gostaria de saber mais?",
			},
			emotion.BucketDistress: {
				"Sinto muito que você esteja passando por isso. Estou aqui para ajudar. O que deixaria as coisas um pouco mais fáceis?",
				"Parece frustrante. Vamos ver o que conseguimos resolver juntos.",
			},
			emotion.BucketPositive: {
				"Que bom ouvir isso! O que vem a seguir para você?",
				"Maravilha! Posso te ajudar com alguma coisa hoje?",
			},
		},
		language.Chinese: {
			emotion.BucketNeutral: {
				"我现在连接有点不稳定，不过我还在。能多说一点你需要什么吗？",
				"挺有意思的。你想进一步了解哪方面呢？",
			},
			emotion.BucketDistress: {
				"听到你正在经历这些，我很难过。我会尽力陪着你。有什么能让事情稍微轻松一点吗？",
				"听起来真的很让人沮丧。我们一起想想办法吧。",
			},
			emotion.BucketPositive: {
				"真为你高兴！接下来有什么打算？",
				"太好了！今天还有什么我可以帮你的吗？",
			},
		},
		language.Japanese: {
			emotion.BucketNeutral: {
				"今ちょっと接続が不安定ですが、ちゃんとここにいます。何が必要か、もう少し教えてもらえますか？",
				"面白いですね。どんなことをもっと知りたいですか？",
			},
			emotion.BucketDistress: {
				"大変な思いをされているんですね。できる限りお手伝いします。何があれば少し楽になりそうですか？",
				"それはもどかしいですよね。一緒に考えてみましょう。",
			},
			emotion.BucketPositive: {
				"それは嬉しいですね！次は何をしたいですか？",
				"素晴らしい！今日は何かお手伝いできることはありますか？",
			},
		},
		language.Korean: {
			emotion.BucketNeutral: {
				"지금 연결이 조금 불안정하지만 저는 여기 있어요. 필요한 걸 조금 더 말해 줄래요?",
				"흥미롭네요. 어떤 부분이 더 궁금하세요?",
			},
			emotion.BucketDistress: {
				"그런 일을 겪고 있다니 마음이 아파요. 제가 할 수 있는 만큼 도울게요. 무엇이 조금이라도 도움이 될까요?",
				"정말 답답하겠어요. 같이 방법을 찾아봐요.",
			},
			emotion.BucketPositive: {
				"정말 좋은 소식이네요! 다음 계획은 뭐예요?",
				"멋져요! 오늘 제가 도와드릴 일이 있을까요?",
			},
		},
		language.Arabic: {
			emotion.BucketNeutral: {
				"أواجه صعوبة في الاتصال الآن، لكنني ما زلت هنا. هل يمكنك أن تخبرني أكثر عما تحتاجه؟",
				"هذا مثير للاهتمام. عن ماذا تود أن تعرف أكثر؟",
			},
			emotion.BucketDistress: {
				"يؤسفني أنك تمر بهذا. أنا هنا لمساعدتك قدر استطاعتي. ما الذي قد يجعل الأمور أسهل قليلاً؟",
				"يبدو ذلك محبطاً. لنرَ ما يمكننا فعله معاً.",
			},
			emotion.BucketPositive: {
				"يسعدني سماع ذلك! ما خطوتك التالية؟",
				"رائع! هل هناك ما يمكنني مساعدتك به اليوم؟",
			},
		},
		language.Hindi: {
			emotion.BucketNeutral: {
				"अभी कनेक्शन में थोड़ी दिक्कत है, लेकिन मैं यहीं हूँ। क्या आप थोड़ा और बता सकते हैं कि आपको क्या चाहिए?",
				"दिलचस्प है। आप किस बारे में और जानना चाहेंगे?",
			},
			emotion.BucketDistress: {
				"मुझे दुख है कि आप इससे गुज़र रहे हैं। मैं जितना हो सके मदद करूँगी। क्या चीज़ इसे थोड़ा आसान बना सकती है?",
				"यह सच में निराशाजनक लगता है। चलिए मिलकर देखते हैं।",
			},
			emotion.BucketPositive: {
				"यह सुनकर बहुत अच्छा लगा! आगे क्या योजना है?",
				"बहुत बढ़िया! क्या आज मैं किसी चीज़ में मदद कर सकती हूँ?",
			},
		},
		language.Russian: {
			emotion.BucketNeutral: {
				"Сейчас у меня проблемы со связью, но я здесь. Расскажешь чуть подробнее, что тебе нужно?",
				"Интересно. О чём бы ты хотел узнать больше?",
			},
			emotion.BucketDistress: {
				"Мне жаль, что тебе приходится через это проходить. Я помогу, чем смогу. Что сделало бы всё чуть проще?",
				"Звучит неприятно. Давай вместе подумаем, что можно сделать.",
			},
			emotion.BucketPositive: {
				"Как здорово это слышать! Что дальше?",
				"Замечательно! Могу я чем-то помочь сегодня?",
			},
		},
	},
}

// crisisReplies 在检测到危机时无条件返回，不依赖模型可用性与人格。
var crisisReplies = map[language.Language]string{
	language.English:    "I'm really sorry you're feeling this much pain, and I'm glad you told me. You don't have to go through this alone. Please reach out right now to someone who can help: call or text 988 in the US, contact your local emergency number, or find a crisis line at findahelpline.com. Would you be willing to reach out to someone you trust today?",
	language.Spanish:    "Siento mucho que estés sintiendo tanto dolor, y me alegra que me lo hayas contado. No tienes que pasar por esto a solas. Por favor, busca ayuda ahora mismo: llama al número de emergencias de tu país o encuentra una línea de crisis en findahelpline.com. En España puedes llamar al 024. ¿Podrías hablar hoy con alguien de confianza?",
	language.French:     "Je suis vraiment désolé que tu souffres autant, et je suis content que tu m'en parles. Tu n'as pas à traverser ça seul. S'il te plaît, contacte quelqu'un dès maintenant : en France, appelle le 3114, sinon ton numéro d'urgence local, ou trouve une ligne d'écoute sur findahelpline.com. Pourrais-tu parler aujourd'hui à une personne de confiance ?",
	language.German:     "Es tut mir wirklich leid, dass du so starken Schmerz fühlst, und ich bin froh, dass du es mir sagst. Du musst da nicht allein durch. Bitte hol dir jetzt Hilfe: In Deutschland erreichst du die Telefonseelsorge unter 0800 111 0 111, sonst deinen lokalen Notruf oder eine Krisenhotline über findahelpline.com. Könntest du heute mit einer Vertrauensperson sprechen?",
	language.Italian:    "Mi dispiace davvero che tu stia soffrendo così tanto, e sono contento che tu me l'abbia detto. Non devi affrontarlo da solo. Per favore, chiedi aiuto adesso: in Italia puoi chiamare Telefono Amico al 02 2327 2327, oppure il numero di emergenza locale, o cerca una linea di crisi su findahelpline.com. Potresti parlare oggi con qualcuno di cui ti fidi?",
	language.Portuguese: "Sinto muito que você esteja sentindo tanta dor, e fico feliz que tenha me contado. Você não precisa passar por isso sozinho. Por favor, procure ajuda agora: no Brasil, ligue 188 (CVV), ou o número de emergência local, ou encontre uma linha de apoio em findahelpline.com. Você poderia falar hoje com alguém de confiança?",
	language.Chinese:    "听到你这么痛苦，我真的很难过，也很感谢你愿意告诉我。你不必独自承受这些。请现在就联系可以帮助你的人：拨打当地的紧急电话，或北京心理危机干预热线 010-82951332，也可以在 findahelpline.com 找到危机热线。今天你愿意联系一位你信任的人吗？",
	language.Japanese:   "そんなに苦しい思いをしているなんて、本当につらいですね。話してくれてありがとう。一人で抱え込まなくていいんです。今すぐ助けを求めてください。日本では「いのちの電話」0570-783-556、または地域の緊急番号に連絡するか、findahelpline.com で相談窓口を探せます。今日、信頼できる誰かに連絡してみませんか？",
	language.Korean:     "그렇게 큰 고통을 느끼고 있다니 정말 마음이 아파요. 말해 줘서 고마워요. 혼자 견디지 않아도 돼요. 지금 바로 도움을 요청해 주세요. 한국에서는 자살예방상담전화 109, 또는 지역 긴급번호로 연락하거나 findahelpline.com 에서 상담 전화를 찾을 수 있어요. 오늘 믿을 수 있는 사람에게 연락해 볼 수 있을까요?",
	language.Arabic:     "أنا آسف حقاً لأنك تشعر بكل هذا الألم، ويسعدني أنك أخبرتني. لست مضطراً لمواجهة هذا وحدك. أرجوك تواصل الآن مع من يستطيع المساعدة: اتصل برقم الطوارئ المحلي أو ابحث عن خط دعم في findahelpline.com. هل يمكنك التحدث اليوم مع شخص تثق به؟",
	language.Hindi:      "मुझे सच में दुख है कि आप इतना दर्द महसूस कर रहे हैं, और मुझे खुशी है कि आपने मुझे बताया। आपको यह अकेले नहीं सहना है। कृपया अभी मदद लें: भारत में टेली-मानस हेल्पलाइन 14416 पर कॉल करें, या स्थानीय आपातकालीन नंबर, या findahelpline.com पर हेल्पलाइन खोजें। क्या आप आज किसी भरोसेमंद व्यक्ति से बात करेंगे?",
	language.Russian:    "Мне очень жаль, что тебе так больно, и я рад, что ты мне рассказал. Тебе не нужно проходить через это в одиночку. Пожалуйста, обратись за помощью прямо сейчас: в России позвони на телефон доверия 8-800-2000-122, в местную экстренную службу или найди линию помощи на findahelpline.com. Можешь ли ты сегодня поговорить с человеком, которому доверяешь?",
}

// fillers 是各语言可用作开头的口语填充词，已包含连接用的标点与空格。
var fillers = map[language.Language][]string{
	language.English:    {"Well, ", "You know, ", "Hmm, ", "So, "},
	language.Spanish:    {"Bueno, ", "Mira, ", "Pues, "},
	language.French:     {"Eh bien, ", "Tu sais, ", "Bon, "},
	language.German:     {"Also, ", "Weißt du, ", "Hm, "},
	language.Italian:    {"Allora, ", "Sai, ", "Beh, "},
	language.Portuguese: {"Olha, ", "Bom, ", "Sabe, "},
	language.Chinese:    {"嗯，", "其实，", "这样啊，"},
	language.Japanese:   {"そうですね、", "うーん、", "えっと、"},
	language.Korean:     {"음, ", "그러니까, ", "있잖아요, "},
	language.Arabic:     {"حسناً، ", "في الحقيقة، "},
	language.Hindi:      {"अच्छा, ", "देखिए, "},
	language.Russian:    {"Ну, ", "Знаешь, ", "Хм, "},
}
