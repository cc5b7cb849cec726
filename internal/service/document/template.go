package document

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/cbroglie/mustache"
)

// Кеш шаблона на процесс: шаблон неизменен в рамках деплоя,
// инвалидация не нужна, читаем файл один раз
var (
	templateMu    sync.Mutex
	templateCache = make(map[string]string)
)

// LoadTemplate возвращает HTML-шаблон документа, читая файл лишь при первом обращении
func LoadTemplate(path string) (string, error) {
	templateMu.Lock()
	defer templateMu.Unlock()

	if tpl, ok := templateCache[path]; ok {
		return tpl, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document template %s: %w", path, err)
	}
	tpl := string(data)
	templateCache[path] = tpl
	return tpl, nil
}

// RenderHTML гидрирует Mustache-шаблон данными payload.
// Payload прогоняется через JSON, чтобы плейсхолдеры шаблона
// ({{participant.fullName}} и т.п.) совпадали с json-тегами структур.
func RenderHTML(template string, payload *Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	var view map[string]interface{}
	if err := json.Unmarshal(raw, &view); err != nil {
		return "", fmt.Errorf("failed to build template view: %w", err)
	}

	html, err := mustache.Render(template, view)
	if err != nil {
		return "", fmt.Errorf("failed to hydrate template: %w", err)
	}
	return html, nil
}
