package crm

// DealStage is the discrete phase of a deal within the sales funnel.
// The two terminal stages (vendu, perdu) are the only exits.
type DealStage string

const (
	StageProspection   DealStage = "prospection"
	StageQualification DealStage = "qualification"
	StageVisite        DealStage = "visite"
	StageOffre         DealStage = "offre"
	StageNegociation   DealStage = "negociation"
	StageCompromis     DealStage = "compromis"
	StageVendu         DealStage = "vendu"
	StagePerdu         DealStage = "perdu"
)

// IsTerminal reports whether the deal has left the active pipeline.
func (s DealStage) IsTerminal() bool {
	return s == StageVendu || s == StagePerdu
}

// IsWon reports whether the deal closed successfully.
func (s DealStage) IsWon() bool {
	return s == StageVendu
}

// IsAdvanced reports whether the stage is one of the three late-pipeline,
// pre-closing phases.
func (s DealStage) IsAdvanced() bool {
	return s == StageOffre || s == StageNegociation || s == StageCompromis
}

// ContactStage is the discrete phase of a contact within the lead funnel.
type ContactStage string

const (
	ContactNouveau     ContactStage = "nouveau"
	ContactContacte    ContactStage = "contacte"
	ContactQualifie    ContactStage = "qualifie"
	ContactNegociation ContactStage = "negociation"
	ContactGagne       ContactStage = "gagne"
	ContactPerdu       ContactStage = "perdu"
)

// IsTerminal reports whether the contact has left the active funnel.
func (s ContactStage) IsTerminal() bool {
	return s == ContactGagne || s == ContactPerdu
}

// IsNew reports whether the contact is still in the initial stage.
func (s ContactStage) IsNew() bool {
	return s == ContactNouveau
}

// ActivityStatus is the lifecycle state of an activity.
type ActivityStatus string

const (
	ActivityPlanifiee ActivityStatus = "planifiee"
	ActivityEnCours   ActivityStatus = "en_cours"
	ActivityTerminee  ActivityStatus = "terminee"
	ActivityAnnulee   ActivityStatus = "annulee"
)

// IsDone reports whether the activity has been completed.
func (s ActivityStatus) IsDone() bool {
	return s == ActivityTerminee
}
