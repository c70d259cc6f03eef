package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Fixed copy of the page, written as Markdown
const (
	mdIntro          = "Visão executiva da saúde do estoque, focada em prevenir perdas financeiras por vencimento."
	mdSidebarIntro   = "Insira os dados de um lote específico para verificar o risco de vencimento."
	mdImportanceNote = "Este gráfico mostra o foco do modelo. Normalmente, o **Tempo Restante** é o mais crítico, mas se o **Volume em Estoque** for muito alto, a influência dele se iguala. Isso é a chave para a gestão proativa."
	mdRecallNote     = "- **Foco:** O `Recall` de 'Alto Risco' é a métrica mais importante, medindo nossa capacidade de CAPTURAR todos os lotes problemáticos."
	mdFooter         = "###### Desenvolvido por Lucas Pablo - Cientista de Dados | 2025"
)

// renderMarkdown converts trusted, server-authored Markdown into HTML.
// A parser keeps state between documents, so each call gets its own.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
