// Package messages собирает все тексты, которые видят пользователи в ботах.
package messages

const (
	// КЛИЕНТСКИЙ БОТ
	Welcome           = "Добро пожаловать в программу лояльности кофейни! Жмите 'Начать' для регистрации."
	RegisterPhone     = "Пожалуйста, отправьте свой номер через кнопку ниже."
	RegisterFirstName = "Введите ваше имя:"
	RegisterLastName  = "Введите вашу фамилию:"
	RegisterBirthDate = "Введите вашу дату рождения (ДД.ММ.ГГГГ):"
	RegisterBadDate   = "Неверный формат даты. Введите как ДД.ММ.ГГГГ (например: 15.03.1990)"
	RegisterBadAge    = "Пожалуйста, введите корректную дату рождения (возраст от 10 до 100 лет)"

	RegistrationSuccess = "Вы успешно зарегистрированы! Добро пожаловать 🎉"
	AlreadyRegistered   = "Пользователь уже зарегистрирован."
	NotRegistered       = "Вы не зарегистрированы в системе. Пожалуйста, зарегистрируйтесь."

	ProfileTemplate = "Профиль:\n" +
		"Имя: %s\n" +
		"Фамилия: %s\n" +
		"Телефон: %s\n" +
		"Дата рождения: %s\n" +
		"Уровень лояльности: %s\n" +
		"Баллы: %d\n" +
		"Напитков куплено: %d\n" +
		"Сэндвичей куплено: %d\n" +
		"Подарков (напитки): %d\n" +
		"Подарков (сэндвичи): %d"

	CodeGenerated = "Вы можете накопить или списать ваши бонусы, назвав этот код бариста: %s\n" +
		"Код действует 90 секунд."
	CodeInvalid = "Некорректный код или он уже использован."

	FeedbackMenu          = "Обратная связь:\nВыберите действие:"
	FeedbackAskScore      = "Пожалуйста, оцените наш сервис от 1 до 10:"
	FeedbackBadScore      = "Пожалуйста, введите число от 1 до 10"
	FeedbackThanksGood    = "Спасибо! Пожалуйста, разместите отзыв на наших страницах: ..."
	FeedbackThanksBad     = "Расскажите подробнее, что можно улучшить:"
	FeedbackSent          = "Спасибо за ваш отзыв!"
	IdeaAsk               = "Поделитесь своей идеей для улучшения нашего кафе:"
	IdeaSent              = "Спасибо! Ваша идея отправлена руководству."
	AdminMessageAsk       = "Напишите ваше сообщение для руководства:"
	AdminMessageSent      = "Ваше сообщение отправлено руководству!"
	GenericError          = "Произошла ошибка. Попробуйте позже."
	MainMenu              = "Главное меню"

	BirthdayCongrats = "С Днем рождения! 🎉 Вам подарок от кофейни — бесплатный напиток!"

	// БАРИСТА-БОТ
	BaristaWelcome       = "Главное меню бариста."
	OrderCodeInput       = "Введите 5-значный код клиента:"
	OrderClientFound     = "Клиент: %s %s. Подтвердите заказ."
	OrderInputReceipt    = "Введите номер чека:"
	OrderInputSum        = "Введите сумму заказа (в рублях):"
	OrderInputDrinks     = "Введите количество напитков:"
	OrderInputSandwiches = "Введите количество сэндвичей:"
	OrderPointsOrAccum   = "Списать или накопить баллы?"
	OrderInputPoints     = "Сколько баллов списать?"
	OrderConfirm         = "Подтвердить заказ?"
	OrderSuccess         = "Заказ успешно проведён!"
	OrderFail            = "Ошибка при обработке заказа!"
	OrderBadNumber       = "Введите целое число."

	GiftAskUser        = "Введите Telegram ID пользователя для выдачи подарка:"
	GiftAskType        = "Выберите тип подарка:"
	GiftAskAmount      = "Введите количество (по умолчанию 1):"
	GiftIssued         = "✅ Подарок выдан"
	GiftFail           = "❌ Ошибка при выдаче подарка"
	WriteOffAskUser    = "Введите Telegram ID пользователя для списания подарка:"
	WriteOffNoGifts    = "У пользователя нет активных подарков"
	WriteOffPick       = "Выберите номер подарка для списания:"
	WriteOffDone       = "✅ Подарок списан"
	WriteOffFail       = "❌ Ошибка при списании подарка"
	UserNotFoundRetry  = "Пользователь не найден. Попробуйте еще раз:"
	Cancelled          = "Отменено"

	NotificationAskText   = "Введите текст уведомления:"
	NotificationAskTarget = "Кому отправить уведомление?"
	NotificationAskUser   = "Введите Telegram ID пользователя:"
	NotificationSent      = "✅ Уведомление отправлено"
	NotificationFail      = "❌ Ошибка при отправке уведомления"

	HistoryEmpty = "История заказов пуста"
	HistoryFail  = "Ошибка при получении истории"
)

// Кнопки
const (
	BtnStart           = "Начать"
	BtnProfile         = "Мой профиль"
	BtnGenCode         = "Получить код"
	BtnGenNewCode      = "Новый код"
	BtnFeedback        = "Обратная связь"
	BtnLeaveFeedback   = "Оставить отзыв"
	BtnLeaveIdea       = "Предложить идею"
	BtnContactAdmin    = "Написать руководству"
	BtnBack            = "Назад"
	BtnConfirm         = "Подтвердить"
	BtnSend            = "Отправить"
	BtnCancel          = "Отмена"
	BtnSendPhone       = "Отправить номер"

	BtnOrder            = "Провести заказ"
	BtnOrderPoints      = "Списать"
	BtnOrderAccumulate  = "Накопить"
	BtnGift             = "Выдать подарок"
	BtnWriteOffGift     = "Списать подарок"
	BtnNotification     = "Создать уведомление"
	BtnHistory          = "История"
	BtnNotifyAll        = "Всем пользователям"
	BtnNotifyOne        = "Одному пользователю"
	BtnGiftDrink        = "Напиток"
	BtnGiftSandwich     = "Сэндвич"
)
