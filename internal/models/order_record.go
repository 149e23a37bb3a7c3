package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoicePending = "Pending"
	InvoiceIssued  = "Issued"
)

// OrderRecord is the wide row stored in the pedidos table.
// It keeps the legacy columns so older rows still load.
type OrderRecord struct {
	ID         int64  `gorm:"column:id_pedido;primaryKey;autoIncrement" json:"id_pedido"`
	Cliente    string `gorm:"column:cliente;not null;check:chk_pedidos_cliente,cliente <> ''" json:"cliente"`
	Telefone   string `gorm:"column:telefone;not null;check:chk_pedidos_telefone,telefone <> ''" json:"telefone"`
	Endereco   string `gorm:"column:endereco" json:"endereco"`
	CPF        string `gorm:"column:cpf" json:"cpf"`
	Observacao string `gorm:"column:observacao" json:"observacao"`
	NomeItem   string `gorm:"column:nome_item" json:"nome_item"`
	Categoria  string `gorm:"column:categoria;default:pizza" json:"categoria"`

	// legacy
	PedidoPizza         string          `gorm:"column:pedido_pizza" json:"pedido_pizza"`
	TamanhoPizza        string          `gorm:"column:tamanho_pizza" json:"tamanho_pizza"`
	QuantidadePizza     int             `gorm:"column:quantidade_pizza" json:"quantidade_pizza"`
	ItemExtra           string          `gorm:"column:item_extra" json:"item_extra"`
	PedidoBebida        string          `gorm:"column:pedido_bebida" json:"pedido_bebida"`
	Sobremesa           string          `gorm:"column:sobremesa" json:"sobremesa"`
	BordaRecheada       string          `gorm:"column:borda_recheada" json:"borda_recheada"`
	QuantidadeBebidas   int             `gorm:"column:quantidade_bebidas" json:"quantidade_bebidas"`
	QuantidadeSobremesa int             `gorm:"column:quantidade_sobremesa" json:"quantidade_sobremesa"`
	EnderecoEntrega     string          `gorm:"column:endereco_entrega" json:"endereco_entrega"`
	CPFNota             string          `gorm:"column:cpf_nota" json:"cpf_nota"`
	PrecoItemExtra      decimal.Decimal `gorm:"column:preco_item_extra;type:decimal(10,2);default:0" json:"preco_item_extra"`
	FormaPagamento      string          `gorm:"column:forma_pagamento;default:Dinheiro" json:"forma_pagamento"`

	PrecoUnitario decimal.Decimal `gorm:"column:preco_unitario;type:decimal(10,2)" json:"preco_unitario"`
	PrecoTotal    decimal.Decimal `gorm:"column:preco_total;type:decimal(10,2)" json:"preco_total"`
	HoraPedido    time.Time       `gorm:"column:hora_pedido;index" json:"hora_pedido"`
	NfeURL        string          `gorm:"column:nfe_url" json:"nfe_url"`
	NfeStatus     string          `gorm:"column:nfe_status;default:Pending" json:"nfe_status"`
}

// TableName keeps the storefront's original table name
func (OrderRecord) TableName() string {
	return "pedidos"
}
