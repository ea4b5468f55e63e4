package dataset

import "item-pairs/internal/similarity"

var synthetic = []similarity.TrainingSample{
	{ItemATitle: "Telefono movil Samsung", ItemBTitle: "Telefono celular Samsung", IsSimilar: 1},
	{ItemATitle: "Laptop HP 15 pulgadas", ItemBTitle: "Notebook HP 15 inch", IsSimilar: 1},
	{ItemATitle: "Auriculares bluetooth Sony", ItemBTitle: "Audifonos bluetooth Sony", IsSimilar: 1},
	{ItemATitle: "Camara digital Canon", ItemBTitle: "Camara fotografica Canon", IsSimilar: 1},
	{ItemATitle: "Tablet iPad 10 pulgadas", ItemBTitle: "iPad 10 inch tablet", IsSimilar: 1},
	{ItemATitle: "Smartwatch Apple Watch", ItemBTitle: "Reloj inteligente Apple", IsSimilar: 1},
	{ItemATitle: "Teclado mecanico RGB", ItemBTitle: "Teclado gaming RGB", IsSimilar: 1},
	{ItemATitle: "Mouse inalambrico Logitech", ItemBTitle: "Mouse wireless Logitech", IsSimilar: 1},

	{ItemATitle: "Telefono movil Samsung", ItemBTitle: "Laptop HP 15 pulgadas", IsSimilar: 0},
	{ItemATitle: "Auriculares bluetooth Sony", ItemBTitle: "Camara digital Canon", IsSimilar: 0},
	{ItemATitle: "Tablet iPad 10 pulgadas", ItemBTitle: "Teclado mecanico RGB", IsSimilar: 0},
	{ItemATitle: "Smartwatch Apple Watch", ItemBTitle: "Mouse inalambrico Logitech", IsSimilar: 0},
	{ItemATitle: "Telefono movil Samsung", ItemBTitle: "Auriculares bluetooth Sony", IsSimilar: 0},
	{ItemATitle: "Laptop HP 15 pulgadas", ItemBTitle: "Tablet iPad 10 pulgadas", IsSimilar: 0},
	{ItemATitle: "Camara digital Canon", ItemBTitle: "Smartwatch Apple Watch", IsSimilar: 0},
	{ItemATitle: "Teclado mecanico RGB", ItemBTitle: "Mouse inalambrico Logitech", IsSimilar: 0},
}

// SyntheticSamples returns a fresh copy of the built-in bootstrap set:
// eight similar product pairs followed by eight unrelated ones.
func SyntheticSamples() []similarity.TrainingSample {
	return append([]similarity.TrainingSample(nil), synthetic...)
}
