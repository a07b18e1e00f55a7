package services

// License advisor input vocabulary.
const (
	ProductWindows = "windows"
	ProductOffice  = "office"
	ProductBoth    = "both"

	PaymentPerpetual    = "perpetual"
	PaymentSubscription = "subscription"

	UserTypeHome       = "home"
	UserTypeBusiness   = "business"
	UserTypeEnterprise = "enterprise"
)

// UserCountBuckets are the accepted team-size ranges.
var UserCountBuckets = []string{"1-5", "6-25", "26-100", "100+"}

func validUserCount(count string) bool {
	for _, b := range UserCountBuckets {
		if b == count {
			return true
		}
	}
	return false
}

// LicenseInfo describes one license product in the catalog.
type LicenseInfo struct {
	Name         string   `json:"name"`
	Price        string   `json:"price"`
	Type         string   `json:"type,omitempty"`
	Support      string   `json:"support,omitempty"`
	Transferable bool     `json:"transferable"`
	Description  string   `json:"description"`
	IdealFor     string   `json:"idealFor"`
	Features     []string `json:"features,omitempty"`
	Pros         []string `json:"pros,omitempty"`
	Cons         []string `json:"cons,omitempty"`
}

// LicenseRecommendation is the advisor's answer for a given profile.
type LicenseRecommendation struct {
	Windows *LicenseInfo `json:"windows"`
	Office  *LicenseInfo `json:"office"`
	Reason  string       `json:"reason"`
}

var windowsCatalog = map[string]LicenseInfo{
	"oem": {
		Name:         "Windows 11 OEM",
		Price:        "$500-$1,200 MXN",
		Support:      "Limitado",
		Transferable: false,
		Description:  "Licencia vinculada al hardware",
		IdealFor:     "Nuevas PC, uso único por equipo",
		Features:     []string{"Vinculada al hardware", "Precio más económico", "No transferible"},
		Pros:         []string{"Más económico", "Activación automática"},
		Cons:         []string{"No transferible", "Soporte limitado"},
	},
	"retail": {
		Name:         "Windows 11 Retail",
		Price:        "$2,500-$4,500 MXN",
		Support:      "Completo",
		Transferable: true,
		Description:  "Licencia transferible entre equipos",
		IdealFor:     "Usuarios que cambian de PC frecuentemente",
		Features:     []string{"Transferible entre equipos", "Soporte oficial Microsoft", "Mayor inversión inicial"},
		Pros:         []string{"Transferible", "Soporte completo"},
		Cons:         []string{"Más costoso"},
	},
	"volume": {
		Name:         "Windows 11 Pro (Volumen)",
		Price:        "$1,500-$2,000 MXN",
		Support:      "Empresarial",
		Transferable: true,
		Description:  "Licencia para despliegues masivos",
		IdealFor:     "Empresas, organizaciones, despliegues masivos",
		Features:     []string{"Activación múltiple", "Gestión centralizada", "Contratos mínimos"},
		Pros:         []string{"Gestión centralizada", "Activación múltiple"},
		Cons:         []string{"Contratos mínimos"},
	},
}

var officeCatalog = map[string]LicenseInfo{
	"ltsc2024": {
		Name:        "Office LTSC 2024 Pro Plus",
		Price:       "$3,500-$4,500 MXN",
		Type:        "Perpetua",
		Support:     "5 años",
		Description: "Licencia perpetua de pago único",
		IdealFor:    "Empresas que prefieren licencias perpetuas",
		Features:    []string{"Word", "Excel", "PowerPoint", "Outlook", "Access", "OneNote"},
	},
	"m365personal": {
		Name:        "Microsoft 365 Personal",
		Price:       "$1,299 MXN/año",
		Type:        "Suscripción",
		Description: "Suscripción personal con almacenamiento",
		IdealFor:    "1 usuario personal",
		Features:    []string{"Apps actualizadas", "1TB OneDrive", "Soporte 24/7"},
	},
	"m365family": {
		Name:        "Microsoft 365 Familiar",
		Price:       "$1,799 MXN/año",
		Type:        "Suscripción",
		Description: "Suscripción familiar hasta 6 usuarios",
		IdealFor:    "Hasta 6 usuarios de una familia",
		Features:    []string{"6 cuentas", "1TB c/u", "Apps completas"},
	},
	"m365business": {
		Name:        "Microsoft 365 Business Standard",
		Price:       "$2,800-$3,200 MXN/año por usuario",
		Type:        "Suscripción",
		Description: "Suite empresarial completa",
		IdealFor:    "Pequeñas y medianas empresas",
		Features:    []string{"Herramientas empresariales", "Teams", "SharePoint"},
	},
}

var windowsRules = map[string]string{
	"home-perpetual":          "oem",
	"home-subscription":       "retail",
	"business-perpetual":      "volume",
	"business-subscription":   "volume",
	"enterprise-perpetual":    "volume",
	"enterprise-subscription": "volume",
}

var officeRules = map[string]string{
	"home-perpetual-1-5":      "ltsc2024",
	"home-subscription-1-5":   "m365personal",
	"home-subscription-6-25":  "m365family",
	"business-perpetual":      "ltsc2024",
	"business-subscription":   "m365business",
	"enterprise-perpetual":    "ltsc2024",
	"enterprise-subscription": "m365business",
}

var recommendationReasons = map[string]string{
	"home-perpetual":          "Opción más económica para uso personal sin necesidad de actualizaciones continuas",
	"home-subscription":       "Flexibilidad y actualizaciones continuas con almacenamiento en la nube",
	"business-perpetual":      "Control de costos a largo plazo con gestión centralizada",
	"business-subscription":   "Herramientas empresariales modernas con colaboración en tiempo real",
	"enterprise-perpetual":    "Gestión a gran escala con control total sobre actualizaciones",
	"enterprise-subscription": "Funcionalidades avanzadas de seguridad y administración empresarial",
}

const defaultReason = "Esta combinación ofrece la mejor relación costo-beneficio para tu perfil de uso"

// RecommendLicense resolves the advisor rules for the given profile. Missing
// product, user type or payment yields nil; combinations without a rule leave
// the corresponding field nil but still carry a reason.
func RecommendLicense(product, payment, userType, userCount string) *LicenseRecommendation {
	if product == "" || userType == "" || payment == "" {
		return nil
	}

	rec := &LicenseRecommendation{}

	if product == ProductWindows || product == ProductBoth {
		if key, ok := windowsRules[userType+"-"+payment]; ok {
			if info, ok := windowsCatalog[key]; ok {
				rec.Windows = &info
			}
		}
	}

	if product == ProductOffice || product == ProductBoth {
		officeKey := userType + "-" + payment
		// Personal subscriptions branch on team size. Counts outside the
		// accepted buckets are treated as unset.
		if userType == UserTypeHome && payment == PaymentSubscription && validUserCount(userCount) {
			officeKey += "-" + userCount
		}
		if key, ok := officeRules[officeKey]; ok {
			if info, ok := officeCatalog[key]; ok {
				rec.Office = &info
			}
		}
	}

	if reason, ok := recommendationReasons[userType+"-"+payment]; ok {
		rec.Reason = reason
	} else {
		rec.Reason = defaultReason
	}

	return rec
}
