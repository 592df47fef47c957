package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Встроенные HTML-шаблоны писем. Держим их в коде, а не на диске,
// чтобы бинарник оставался самодостаточным.
var defaultTemplates = map[string]string{
	"welcome": `
<h2>Добро пожаловать в Portfolia, {{.UserName}}!</h2>
<p>Ваш аккаунт создан. Теперь вы можете собрать свое портфолио и поделиться им.</p>
<p><a href="{{.ActionURL}}">Перейти в личный кабинет</a></p>`,

	"access_requested": `
<h2>Новый запрос доступа</h2>
<p>Здравствуйте, {{.OwnerName}}!</p>
<p>Пользователь <b>{{.RequesterName}}</b> запросил доступ к вашему портфолио «{{.PortfolioTitle}}».</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
<p><a href="{{.ActionURL}}">Открыть входящие запросы</a></p>`,

	"access_decided": `
<h2>{{if .Approved}}Доступ предоставлен{{else}}Доступ отклонен{{end}}</h2>
<p>Здравствуйте, {{.RequesterName}}!</p>
{{if .Approved}}
<p>Владелец портфолио «{{.PortfolioTitle}}» одобрил ваш запрос.</p>
{{else}}
<p>Владелец портфолио «{{.PortfolioTitle}}» отклонил ваш запрос.</p>
{{end}}
{{if .OwnerNote}}<blockquote>{{.OwnerNote}}</blockquote>{{end}}
<p><a href="{{.ActionURL}}">Перейти к портфолио</a></p>`,
}

// TemplateManager рендерит HTML-шаблоны писем.
type TemplateManager struct {
	templates *template.Template
}

// NewTemplateManager загружает встроенные шаблоны.
func NewTemplateManager() (*TemplateManager, error) {
	root := template.New("email")
	for name, body := range defaultTemplates {
		if _, err := root.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("failed to parse email template %q: %w", name, err)
		}
	}
	return &TemplateManager{templates: root}, nil
}

// Render рендерит шаблон с данными.
func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tm.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
