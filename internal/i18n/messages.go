package i18n

// builtinMessages seeds the catalog with the validation messages external
// identity providers report by code. Codes follow the provider convention
// of naming the offending field.
var builtinMessages = map[string]map[string]string{
	"en": {
		"user.username.length_constraint_violation": "Username length must be between {min} and {max} characters",
		"user.username.already_exists":              "Username is already taken",
		"user.username.illegal_characters":          "Username contains illegal characters",
		"user.email.length_constraint_violation":    "Email length must not exceed {max} characters",
		"user.email.illegal_format":                 "Email format is invalid",
		"user.email.already_exists":                 "Email is already registered",
		"user.password.length_constraint_violation": "Password length must be between {min} and {max} characters",
		"user.password.confirmation_mismatch":       "Password confirmation does not match",
		"user.captcha.wrong_captcha":                "The answer to the captcha is wrong",
	},
	"ru": {
		"user.username.length_constraint_violation": "Длина имени пользователя должна быть от {min} до {max} символов",
		"user.username.already_exists":              "Имя пользователя уже занято",
		"user.username.illegal_characters":          "Имя пользователя содержит недопустимые символы",
		"user.email.length_constraint_violation":    "Длина email не должна превышать {max} символов",
		"user.email.illegal_format":                 "Неверный формат email",
		"user.email.already_exists":                 "Email уже зарегистрирован",
		"user.password.length_constraint_violation": "Длина пароля должна быть от {min} до {max} символов",
		"user.password.confirmation_mismatch":       "Подтверждение пароля не совпадает",
		"user.captcha.wrong_captcha":                "Неверный ответ на капчу",
	},
}
