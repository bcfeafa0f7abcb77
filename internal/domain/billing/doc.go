// Package billing contiene las reglas de cálculo de facturación: IVA por concepto,
// regla de estrato para internet, totales por línea y por sede, y los términos
// del contrato (cláusula de permanencia y renovación).
//
// Todas las funciones son puras: no hacen I/O ni registran logs. Los errores
// devueltos envuelven los sentinelas de internal/domain.
package billing
