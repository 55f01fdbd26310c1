// Package host define o modelo de itens e as portas que o servidor de jogo
// oferece ao plugin.
package host

// Actor é quem está com a tela de crafting aberta.
type Actor interface {
	Name() string
	SendMessage(msg string)
}

// Scheduler agenda trabalho nos contextos de execução do servidor.
type Scheduler interface {
	// RunTask executa na thread principal do jogo.
	RunTask(task func())
	// RunAsync executa em um worker fora da thread principal.
	RunAsync(task func())
}

// Listener recebe o evento de preparação de crafting.
type Listener interface {
	OnPrepareItemCraft(ev *PrepareCraftEvent)
}

// PrepareCraftEvent é disparado antes do servidor exibir o resultado de um crafting.
type PrepareCraftEvent struct {
	Result *Item
	Recipe *Recipe
	Matrix []*Item
	Viewer Actor
}

// SetResult altera o resultado que o servidor vai exibir. nil significa nenhum.
func (e *PrepareCraftEvent) SetResult(item *Item) {
	e.Result = item
}
