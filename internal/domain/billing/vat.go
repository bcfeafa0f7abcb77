package billing

// LineKind tipo de línea facturable. Coincide con los tipos de concepto y de plan.
type LineKind string

const (
	KindInternet   LineKind = "internet"
	KindTelevision LineKind = "television"
	KindReconexion LineKind = "reconexion"
	KindInteres    LineKind = "interes"
	KindDescuento  LineKind = "descuento"
	KindVarios     LineKind = "varios"
	KindPublicidad LineKind = "publicidad"
)

// VATStratumThreshold estrato mínimo desde el cual el internet residencial causa IVA.
const VATStratumThreshold = 4

// VATApplies decide si una línea causa IVA.
//
// Internet: solo desde estrato 4, sin importar la bandera del catálogo.
// Cualquier otro tipo: exactamente la bandera del concepto o plan; el estrato no cuenta.
//
// Es el único lugar donde vive esta regla; la vista previa y la emisión de facturas la comparten.
func VATApplies(kind LineKind, flag bool, stratum int) bool {
	if kind == KindInternet {
		return stratum >= VATStratumThreshold
	}
	return flag
}
