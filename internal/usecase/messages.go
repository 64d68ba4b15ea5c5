package usecase

import "github.com/iamvkosarev/post-generator-bot/pkg/local"

const CommandStart = "start"

var (
	MessageCommandStartStyles = local.NewSet(
		"Привет, %s!\nЯ твой личный генератор контента на основе Mistral AI🙏\n\n"+
			"🪄 Выбери стиль генерации текста в меню:\n%s\n"+
			"✍ После выбора просто отправь мне тему для поста.",
		local.NewTrans(
			local.Eng,
			"Hi, %s!\nI'm your personal content generator powered by Mistral AI🙏\n\n"+
				"🪄 Pick a text generation style in the menu:\n%s\n"+
				"✍ After that just send me the topic of the post.",
		),
	)
	MessageCommandStartSimple = local.NewSet(
		"Привет, %s! Я твой личный бот-генератор контента на основе Mistral AI. "+
			"Я умею создавать текстовые посты с изображением по твоему запросу. "+
			"Чтобы начать, нажми кнопку просто отправь мне тему для поста.",
		local.NewTrans(
			local.Eng,
			"Hi, %s! I'm your personal content generator bot powered by Mistral AI. "+
				"I create text posts with an image on request. "+
				"To begin, press the button or just send me the topic of the post.",
		),
	)
	MessageStyleLine     = local.NewSet("🔹 %s — %s\n")
	MessageStyleSelected = local.NewSet(
		"Выбран стиль: %s\nТеперь отправь мне тему поста, и я напишу его для тебя🙌",
		local.NewTrans(local.Eng, "Style selected: %s\nNow send me the topic and I'll write the post for you🙌"),
	)
	ButtonGeneratePost = local.NewSet(
		"Генерировать пост 🚀",
		local.NewTrans(local.Eng, "Generate post 🚀"),
	)
	MessageAskTopic = local.NewSet(
		"Отлично! Какую тему ты хотел бы видеть в своем посте? "+
			"Опиши максимально подробно, что должно быть в тексте и на картинке.",
		local.NewTrans(
			local.Eng,
			"Great! What topic would you like to see in your post? "+
				"Describe in as much detail as possible what should be in the text and in the picture.",
		),
	)
	MessageGenerating = local.NewSet(
		"Уже генерирую твой пост, %s🤍",
		local.NewTrans(local.Eng, "Already generating your post, %s🤍"),
	)
	MessageEmptyText = local.NewSet(
		"Не удалось сгенерировать текст поста. Попробуй ещё раз, возможно, проблема с API ключом.",
		local.NewTrans(local.Eng, "Failed to generate the post text. Try again, the API key may be the problem."),
	)
	MessagePostWithoutImage = local.NewSet(
		"Вот твой пост, %s:\n\n%s\n\nК сожалению, не удалось сгенерировать изображение. Возможно, превышен лимит запросов.",
		local.NewTrans(
			local.Eng,
			"Here is your post, %s:\n\n%s\n\nUnfortunately the image could not be generated. The request limit may have been exceeded.",
		),
	)
	MessageUnexpectedError = local.NewSet(
		"Произошла непредвиденная ошибка. Пожалуйста, попробуй ещё раз.",
		local.NewTrans(local.Eng, "An unexpected error occurred. Please try again."),
	)
	MessageDefaultUserName = local.NewSet("пользователь", local.NewTrans(local.Eng, "user"))
)

// Texts returned by the text generator instead of a post.
var (
	MessageTextAuthError = local.NewSet(
		"Не удалось сгенерировать текст. Проверьте ваш API ключ Mistral.",
		local.NewTrans(local.Eng, "Failed to generate text. Check your Mistral API key."),
	)
	MessageTextError = local.NewSet(
		"Не удалось сгенерировать текст. Попробуйте еще раз.",
		local.NewTrans(local.Eng, "Failed to generate text. Please try again."),
	)
)

// Prompts sent to the models.
var (
	PromptTextSystem = local.NewSet(
		"Ты - креативный ассистент, который пишет интересные и уникальные посты.",
		local.NewTrans(local.Eng, "You are a creative assistant who writes interesting and unique posts."),
	)
	PromptTextUser = local.NewSet(
		"Напиши увлекательный пост, который вызывает эмоции на теме: '%s', используй эмодзи и добавь хэштеги",
		local.NewTrans(
			local.Eng,
			"Write an engaging post that evokes emotions on the topic: '%s', use emoji and add hashtags",
		),
	)
	PromptImageAgentName = local.NewSet(
		"Агент генерации изображений",
		local.NewTrans(local.Eng, "Image generation agent"),
	)
	PromptImageAgentDescription = local.NewSet(
		"Агент, используемый для генерации изображений.",
		local.NewTrans(local.Eng, "Agent used to generate images."),
	)
	PromptImageAgentInstructions = local.NewSet(
		"Используй инструмент для генерации изображений, когда тебя просят создать изображение. "+
			"Генерируй изображения в высоком качестве.",
		local.NewTrans(
			local.Eng,
			"Use the image generation tool when you are asked to create an image. Generate high quality images.",
		),
	)
	PromptImageRequest = local.NewSet(
		"Создай уникальное и привлекательное изображение по запросу: '%s'. "+
			"Изображение должно соответствовать теме поста. Сгенерируй только одно изображение.",
		local.NewTrans(
			local.Eng,
			"Create a unique and attractive image for the request: '%s'. "+
				"The image must match the topic of the post. Generate only one image.",
		),
	)
)
