package server

import "sync"

// Player é um jogador em memória que guarda as mensagens recebidas.
type Player struct {
	name string

	mu       sync.Mutex
	messages []string
}

// NewPlayer cria um jogador.
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

func (p *Player) Name() string {
	return p.name
}

// SendMessage implementa host.Actor.
func (p *Player) SendMessage(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}

// Messages retorna uma cópia das mensagens recebidas.
func (p *Player) Messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.messages...)
}
