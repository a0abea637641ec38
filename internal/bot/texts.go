package bot

// Resident bot button labels
const (
	btnStartBot       = "🚀 СТАРТ | Розпочати роботу 🇺🇦"
	btnSubmitReadings = "📊 Надіслати показники"
	btnEditProfile    = "👤 Редагувати профіль"
	btnAbout          = "🏢 Про Нас"

	btnFullName      = "ПІБ"
	btnAddress       = "Адреса"
	btnCountOfMeters = "Кількість лічильників"
	btnAccountNumber = "Номер рахунку"

	btnEditCounters    = "🧮 Редагувати лічильники"
	btnAddCounter      = "Додати лічильник"
	btnEditCounter     = "Редагувати лічильник"
	btnEditCounterName = "Редагувати назву лічильника"
	btnDeleteCounter   = "Видалити лічильник"

	btnBack   = "Назад"
	btnGoHome = "На головну"

	btnSharePhone = "📱 Надіслати мій номер телефону"

	btnConsentYes = "Так, я даю згоду ✅"
	btnConsentNo  = "Ні, я не даю згоду ❌"

	btnAboutDeveloper = "🤖 Хто створив цього бота? | Дізнайся більше! 👨‍💻💻"
)

// Admin bot button labels
const (
	btnAdminReport = "📊 Сформувати звіт за період"
	btnAdminBack   = "🔙 Назад"
)

// Resident bot messages
const (
	msgWelcome = "Вітаємо! Цей бот приймає показники лічильників води.\n" +
		"Для початку потрібно зареєструватися."
	msgWelcomeBack       = "З поверненням! Оберіть дію з меню:"
	msgAskAccountNumber  = "Введіть номер особового рахунку:"
	msgAccountDigitsOnly = "Номер особового рахунку повинен містити тільки цифри. Спробуйте ще раз."
	msgAskFullName       = "Введіть ваше ПІБ:"
	msgFullNameTooShort  = "ПІБ занадто коротке. Спробуйте ще раз."
	msgAskAddress        = "Введіть вашу адресу:\n\nНаприклад: вул. Центральна, 1, кв 1"
	msgAskPhone          = "Тепер введіть номер телефону власника рахунку.\n\n" +
		"Ви можете:\n" +
		"• Ввести номер вручну (наприклад, +380123456789)\n" +
		"• Натиснути кнопку '📱 Надіслати мій номер телефону'"
	msgPhoneFormat = "Будь ласка, введіть номер телефону у форматі +380XXXXXXXXX\n\n" +
		"Або скористайтеся кнопкою '📱 Надіслати мій номер телефону'"
	msgAskMetersCount     = "Скільки у вас лічильників води? (від 1 до 3)"
	msgMetersCountInvalid = "Кількість лічильників повинна бути від 1 до 3."
	msgAskConsent         = "Для завершення реєстрації необхідно надати згоду на обробку ваших персональних даних.\n\n" +
		"Ви даєте згоду на обробку наданих вами особистих даних?"
	msgConsentChoose = "Будь ласка, оберіть 'Так, я даю згоду ✅' або 'Ні, я не даю згоду ❌'"
	msgConsentDenied = "На жаль, без згоди на обробку персональних даних ми не можемо завершити реєстрацію. " +
		"Ви можете розпочати реєстрацію знову за командою /start."
	msgRegistrationDone = "✅ Реєстрацію завершено! Тепер ви можете надсилати показники лічильників."

	msgNoCounters      = "У вас немає зареєстрованих лічильників."
	msgChooseCounter   = "Оберіть лічильник:"
	msgCounterNotFound = "Лічильник не знайдено. Спробуйте ще раз."
	msgEnterNumber     = "Будь ласка, введіть число."
	msgReadingFailed   = "Сталася помилка при збереженні показників. Спробуйте ще раз."
	msgSpikeWarning    = "⚠️ Різниця з попередніми показниками незвично велика. Якщо це помилка, зверніться до адміністратора."

	msgChooseProfileField   = "Оберіть поле для редагування:"
	msgAskNewFullName       = "Введіть ПІБ власника рахунку!\n\nНаприклад: Шевченко Тарас Григорович"
	msgAskNewAddress        = "Введіть нову адресу власника рахунку!\n\nНаприклад: вул. Центральна, 1, кв 1"
	msgAskNewAccountNumber  = "Введіть новий номер особового рахунку!"
	msgAskNewMetersCount    = "Введіть нову кількість лічильників:"
	msgFullNameUpdated      = "'ПІБ' успішно оновлено!"
	msgAddressUpdated       = "Адреса успішно оновлена!"
	msgAccountNumberUpdated = "Номер особового рахунку успішно оновлений!"

	msgChooseCounterToEdit = "Оберіть лічильник для редагування:"
	msgAskCounterAlias     = "Введіть назву лічильника:"
	msgAskNewCounterName   = "Введіть нову назву для лічильника '%s':"
	msgCounterAdded        = "Лічильник '%s' успішно додано!"
	msgCounterRenamed      = "Назву лічильника успішно оновлено на '%s'!"
	msgCounterDeleted      = "Лічильник '%s' успішно видалено!"

	msgAboutUs = "🏢 Ми приймаємо показники лічильників води та формуємо звіти для водоканалу.\n" +
		"Показники передаються раз на місяць через цього бота."
	msgAboutDeveloperAsk = "Хочете дізнатися про розробника?"
	msgAboutDeveloper    = "🤖 Бота розроблено для автоматизації збору показників лічильників води."

	msgMainMenu       = "Головне меню:"
	msgRegisterFirst  = "Спочатку зареєструйтесь за допомогою команди /start."
	msgUnknownCommand = "Команда не розпізнана. Оберіть дію з меню:"
	msgGenericError   = "Сталася помилка. Спробуйте ще раз."
)

// ReminderMessage is broadcast to every registered user shortly before
// month end
const ReminderMessage = "Нагадування: залишилось 5 днів до кінця місяця. Будь ласка, передайте показники лічильників."

// Admin bot messages
const (
	msgAdminAskPassword   = "🔐 Для доступу до адмін-панелі введіть пароль:"
	msgAdminAuthorized    = "✅ Пароль вірний! Ласкаво просимо до адмін-панелі.\n\nОберіть дію:"
	msgAdminAlreadyAuthed = "🔐 Ви вже авторизовані як адміністратор.\n\nОберіть дію:"
	msgAdminWrongPassword = "❌ Невірний пароль. Спробуйте ще раз:"
	msgAdminUnauthorized  = "❌ Ви не авторизовані. Введіть команду /start для авторизації."
	msgAdminMainMenu      = "🏠 Головне меню:"
	msgAdminUnknown       = "👤 Команда не розпізнана. Оберіть дію з меню:"

	msgAdminAskStartDate = "📅 Оберіть початкову дату звіту:"
	msgAdminAskEndDate   = "📅 Тепер оберіть кінцеву дату звіту:"
	msgAdminChooseDay    = "Оберіть день:"
	msgAdminStartChosen  = "✅ Початкова дата: %s"
	msgAdminEndChosen    = "✅ Кінцева дата: %s"
	msgAdminBuilding     = "⏳ Формую звіт, будь ласка, зачекайте..."
	msgAdminNoData       = "📋 За вказаний період дані відсутні."
	msgAdminReportDone   = "✅ Звіт успішно сформовано!"
	msgAdminReportFailed = "❌ Сталася помилка при формуванні звіту. Спробуйте ще раз."
	msgAdminCaption      = "📊 Звіт за період з %s по %s\nКількість записів: %d"
)
