// Package docs содержит OpenAPI-описание HTTP API, которое отдаёт /docs.
// Описание соответствует swag-аннотациям обработчиков; при их изменении
// пакет пересобирается командой `swag init -g cmd/fakenews-detector/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Всегда отвечает 200; поле database показывает доступность хранилища.",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Состояние сервиса",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/health.Response"}
                    }
                }
            }
        },
        "/signup": {
            "post": {
                "description": "Создаёт учётную запись. Сессия не выдаётся.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Регистрация пользователя",
                "parameters": [
                    {
                        "description": "Данные пользователя",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/signup.Request"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Message"}
                    },
                    "400": {
                        "description": "Некорректный JSON, ошибка валидации или пользователь уже существует",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "413": {
                        "description": "Тело запроса слишком большое",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    }
                }
            }
        },
        "/login": {
            "post": {
                "description": "Проверяет email и пароль, выдаёт cookie сессии.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Вход пользователя",
                "parameters": [
                    {
                        "description": "Учетные данные пользователя",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/login.Request"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/login.Response"}
                    },
                    "400": {
                        "description": "Некорректный JSON",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "401": {
                        "description": "Неверные учетные данные",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "413": {
                        "description": "Тело запроса слишком большое",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    }
                }
            }
        },
        "/logout": {
            "post": {
                "description": "Отзывает сессию и удаляет cookie. Повторный вызов безопасен.",
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Выход пользователя",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/response.Message"}
                    },
                    "500": {
                        "description": "Не удалось отозвать сессию",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    }
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Классифицирует текст новости как Real или Fake и сохраняет результат.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "Проверка новости",
                "parameters": [
                    {
                        "description": "Текст новости",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/predict.Request"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.Verdict"}
                    },
                    "400": {
                        "description": "Пустой текст или некорректный JSON",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "401": {
                        "description": "Нет сессии или пользователь не найден",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "413": {
                        "description": "Тело запроса слишком большое",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "500": {
                        "description": "Некорректный ответ ML-сервиса или ошибка сохранения",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "503": {
                        "description": "ML-сервис или база данных недоступны",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    }
                }
            }
        },
        "/my-analysis": {
            "get": {
                "description": "Возвращает все проверки пользователя, новые первыми.",
                "produces": ["application/json"],
                "tags": ["Analysis"],
                "summary": "История проверок",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.Analysis"}
                        }
                    },
                    "401": {
                        "description": "Нет сессии",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "404": {
                        "description": "Пользователь не найден",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    },
                    "500": {
                        "description": "Внутренняя ошибка сервера",
                        "schema": {"$ref": "#/definitions/response.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "health.Response": {
            "type": "object",
            "properties": {
                "database": {"type": "string", "example": "connected"},
                "server": {"type": "string", "example": "running"},
                "status": {"type": "string", "example": "ok"}
            }
        },
        "login.Request": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "login.Response": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Login successful"},
                "user": {"$ref": "#/definitions/models.PublicUser"}
            }
        },
        "models.Analysis": {
            "type": "object",
            "properties": {
                "analyzedAt": {"type": "string"},
                "confidence": {"type": "number"},
                "id": {"type": "integer"},
                "newsText": {"type": "string"},
                "prediction": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "models.PublicUser": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "models.Verdict": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "prediction": {"type": "string"}
            }
        },
        "predict.Request": {
            "type": "object",
            "properties": {
                "news": {"type": "string", "example": "Scientists discover a new species of deep-sea fish"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string", "example": "The prediction service is not responding"},
                "error": {"type": "string", "example": "invalid request body"}
            }
        },
        "response.Message": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Signup successful"}
            }
        },
        "signup.Request": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string", "maxLength": 100, "minLength": 2},
                "password": {"type": "string", "maxLength": 72, "minLength": 6}
            }
        }
    }
}`

// SwaggerInfo содержит метаданные API, которые подставляются в docTemplate.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fake News Detector API",
	Description:      "API проверки новостей: регистрация, вход по cookie сессии, классификация текста и история проверок.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
